package main

import "github.com/thereayou/studybud/cmd/server"

func main() {
	server.NewServer().Run()
}
