package main

import "gamemate_backend/internal/app"

func main() {
	app.Run()
}
