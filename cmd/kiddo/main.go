package main

import "github.com/MookeeHugo/kiddo-habit-app/cmd/kiddo/root"

func main() {
	root.Execute()
}
