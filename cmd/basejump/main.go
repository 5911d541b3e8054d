package main

// Entry point for the application
func main() {
	Execute()
}
