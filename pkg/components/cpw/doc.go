// Package cpw generates coplanar waveguide (CPW) geometry: straight
// segments and circular bends.
//
// A CPW cross-section is a signal strip flanked by two ground strips, each
// separated from the signal by a gap, with a resist strip covering the
// stack narrowed by resist_margin on both sides:
//
//	gnd1    gnd_width
//	        gap_width
//	signal  signal_width
//	        gap_width
//	gnd2    gnd_width
//
// Segments run along x. Bends are centred on the origin and start on the +x
// axis. Both expose tl_enter and tl_exit marks on the signal centre line so
// pieces can be chained with shape.Proxy.MarkTo.
package cpw
