package main

import "keyquest/cmd/kq/root"

func main() {
	root.Execute()
}
