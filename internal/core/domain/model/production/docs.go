// Package production contains the manufacturing demand side of the domain:
// the Request aggregate, which pools outstanding demand for a universal SKU
// into a single pending manufacturing order, and the WaitlistEntry, which
// preserves arrival order for demand that no physical unit could satisfy yet.
package production
