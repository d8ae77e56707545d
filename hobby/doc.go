/*
Package hobby interpolates a smooth curve through a sequence of knots,
using John Hobby's spline algorithm as implemented in MetaFont and
MetaPost. The resulting cubic Bézier segments are a convenient way to
produce input paths for the epicycle pipeline from a handful of points.

The primary source of information for "Hobby-splines" is:

	Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
	Computer Science Dept. Stanford University
	Report No. STAN-CS-85-1047, Jan 1985

The practical algorithm is explained in

	Computers & Typesetting, Vol. B & D.

All knots are smooth knots, joined with tension 1. Open paths start and end
with curl 1. With MetaPost syntax this corresponds to

	z0 .. z1 .. z2 .. cycle    (Cycle)
	z0 .. z1 .. z2             (Open)

A circle of diameter 2 around (2,1):

	(1,1) .. controls (1.0000,1.5523) and (1.4477,2.0000)
	  .. (2,2) .. controls (2.5523,2.0000) and (3.0000,1.5523)
	  .. (3,1) .. controls (3.0000,0.4477) and (2.5523,0.0000)
	  .. (2,0) .. controls (1.4477,0.0000) and (1.0000,0.4477)
	  .. cycle

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package hobby
