package main

import "shelter_backend/internal/app"

func main() {
	app.Run()
}
