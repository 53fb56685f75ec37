/*
Package cropicon trims the uniform background around an icon and pads the result
into a transparent square canvas.

The background color is sampled from the top-left pixel of the source image.
Every pixel differing from it in at least one channel is considered content,
the image is cropped to the bounding box of the content, then pasted centered
into a square canvas whose side is the larger cropped dimension increased by
the padding factor (10% by default).

The package provides a command line interface as well. To check the supported flags type:

	$ cropicon --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/cropicon"
	)

	func main() {
		p := &cropicon.Processor{}

		if err := p.CropFile("icon.png", "icon.png"); err != nil {
			fmt.Printf("Error cropping the icon: %s", err.Error())
		}
	}
*/
package cropicon
