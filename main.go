package main

import "github.com/unicampus/campusapi/cmd"

func main() {
	cmd.Execute()
}
