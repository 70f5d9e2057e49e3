// Package pixel implements the packed 1-bit pixel buffer used by the OLED
// drivers in this module, in the page-major byte layout the controllers
// expect.
package pixel
