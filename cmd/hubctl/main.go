package main

import "pehlione.com/admin/internal/hubctl"

func main() {
	hubctl.Execute()
}
