//  BYZRA ⸻ cmd/mirage/main.go <>
// +------------------------------------------------------------------+
//  ooo. .oo.  .oo.   o8o  oooo d8b  .oooo.    .oooooooo  .ooooo.    |
//  888P"Y88bP"Y88b   '"'  '888""8P '  )88b  888' '88b  d88' '88b    |____________________________________________
//  o888o o888o o888o o888o d888b   'Y888""8o '8oooooo.  'Y8bod8P'   .go <--| CLI entrypoint and command routing +

package main

import (
	"fmt"
	"os"

	"mirage/internal/util"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		util.Wiper()
		printHeader()
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var code int
	switch command {
	case "generate", "gen":
		code = runGenerate(args)
	case "apply":
		code = runApply(args)
	case "inspect", "analyse", "analyze":
		code = runInspect(args)
	case "catalog":
		code = runCatalog(args)
	case "daemon":
		code = runDaemon(args)
	case "init":
		code = runInit()
	case "help", "-h", "--help":
		util.Wiper()
		printHeader()
		printUsage()
	case "version", "--version":
		printVersion()
	default:
		fmt.Println(util.LBL.Render("[!] Unknown command: " + command))
		printUsage()
		code = 1
	}

	os.Exit(code)
}

func printHeader() {
	const art = `
	ooo. .oo.  .oo.   o8o  oooo d8b  .oooo.    .oooooooo  .ooooo.
	888P"Y88bP"Y88b   '"'  '888""8P '  )88b  888' '88b  d88' '88b
	888   888   888   888   888     .oP"888  888   888  888ooo888
	888   888   888   888   888    d8(  888  '88bod8P'  888    .o
	o888o o888o o888o o888o d888b   'Y888""8o '8oooooo.  'Y8bod8P'
`

	fmt.Printf("\n%s\n", util.LBL.Render(art))
	fmt.Printf("%s %s\n\n",
		util.NSH.Render("	→"),
		util.SHE.Render("Synthetic Image Metadata Utility"))
}

func printUsage() {
	fmt.Println(util.LBL.Render("USAGE"))
	fmt.Println("  mirage <command> [options]")
	fmt.Println("")
	fmt.Println(util.LBL.Render("COMMANDS"))
	fmt.Println("  generate [options]              print synthetic metadata records")
	fmt.Println("  apply <file|dir>... [options]   write synthetic metadata into images")
	fmt.Println("  inspect <file|dir>...           show the current metadata of images")
	fmt.Println("  catalog [make]                  list makes, or one make's models and lenses")
	fmt.Println("  daemon <on|off|status>          apply the watch preset to new images")
	fmt.Println("  init                            write a default ~/.mirage/config/mirage.toml")
	fmt.Println("  help                            show this help information")
	fmt.Println("  version                         show version information")
	fmt.Println("")
	fmt.Println(util.LBL.Render("FIELD OPTIONS"))
	fmt.Println("  --set Field=directive           random | keep | clear | value, repeatable")
	fmt.Println("  --preset FILE                   directives from a .toml, .lua or .yaml preset")
	fmt.Println("  --locale en|zh                  language of generated text and labels")
	fmt.Println("  --seed N                        reproducible draws")
	fmt.Println("")
	fmt.Println(util.LBL.Render("GENERATE OPTIONS"))
	fmt.Println("  -n N                            number of records (default 1)")
	fmt.Println("")
	fmt.Println(util.LBL.Render("APPLY OPTIONS"))
	fmt.Println("  --no-perturb                    no per-file variation of the shared draw")
	fmt.Println("  --keep-explicit                 explicit values survive perturbation")
	fmt.Println("  --dry-run                       show the planned records, write nothing")
	fmt.Println("  --verify                        read every file back after writing")
	fmt.Println("  --backup                        keep <file>.bak copies")
	fmt.Println("")
	fmt.Println(util.LBL.Render("INSPECT OPTIONS"))
	fmt.Println("  --all                           also list tags outside the known fields")
	fmt.Println("  --plain                         machine-readable lines")
	fmt.Println("")
	fmt.Println(util.SUB.Render("  --json is accepted by generate, apply, inspect and catalog"))
}

func printVersion() {
	fmt.Println(util.LBL.Render("MIRAGE v" + version))
	fmt.Println(util.LBL.Render("→ Coherent synthetic metadata for images"))
}
