// Command fixture is a small program used by engine tests.
package main

import "fmt"

func main() {
	greet("world")
	greet("again")
	fmt.Println(Version)
	fmt.Println("done")
}

func greet(name string) {
	msg := "hello, " + name
	fmt.Println(msg)
	fmt.Println(len(msg))
	fmt.Println(name)
}

// Version is the fixture version string.
const Version = "1.0.0"

func tiny() {}
