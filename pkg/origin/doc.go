// Package origin tracks the URL that was active before each modal
// opened, so that arbitrarily nested modals can restore their origin
// when they close, even out of order. The tracker is an explicit
// object owned by whoever constructs it; there is no package-level
// singleton.
package origin
