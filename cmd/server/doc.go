// Command server runs the browser-desktop backend.
package main
