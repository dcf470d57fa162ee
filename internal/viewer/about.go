package viewer

const aboutText = `Wisdom

This project visualizes thousands of insights from over 1,200 productivity
and self-improvement books in a detailed 3D map. Similar suggestions are
grouped together for easier exploration.

How to Use

Fly Mode [F]: the camera navigates through the orbs for you.

Explore Mode [E]: navigate the 3D space by hand. Click and drag to rotate
the view, use [+]/[-] or the mouse wheel to zoom.

Log [L]: every unique piece of guidance you have come across so far.

Hover over an orb to see its tip. On touch screens, tap the orb.

Created by Hassan Ijaz (https://hassanijaz.com)
Music by LAURENT BUCZEK from Pixabay

Press Esc or click to close.`
