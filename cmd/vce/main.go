package main

import "github.com/osamahabbal/GWM-Harman-VCE/cmd/vce/cmd"

func main() {
	cmd.Execute()
}
