// Command greenhouse is a terminal storefront for a plant catalog.
package main

import "github.com/papapumpkin/greenhouse/cmd"

func main() {
	cmd.Execute()
}
