// main.go - Entry point for the Datatrak receiver board emulator.
//
// Grounded on master-g-childhood/go/chr2png's urfave/cli.v2 shape: flags
// into a config struct, an Action that builds the subsystem and runs it.

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:  "datatrak-emulator",
		Usage: "emulate a Datatrak LF radio-navigation receiver board",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom-odd", Value: "ic2.bin", Usage: "\"odd\" ROM half-image, loaded at even addresses"},
			&cli.StringFlag{Name: "rom-even", Value: "ic1.bin", Usage: "\"even\" ROM half-image, loaded at odd addresses"},
			&cli.IntFlag{Name: "ram-size", Value: ramWindow, Usage: "RAM size in bytes, wraparound-masked within the RAM window"},
			&cli.StringFlag{Name: "nav-mode", Value: "eight-slot", Usage: "navigation cycle layout: eight-slot or interlaced (reserved, not yet implemented)"},
			&cli.IntFlag{Name: "uart-port", Value: 10000, Usage: "UART channel A loopback port (channel B is this+1); 0 disables both"},
			&cli.BoolFlag{Name: "unimplemented-ones", Usage: "unhandled reads return 0xFF... instead of 0x00..."},
			&cli.StringFlag{Name: "dump-raw", Usage: "append raw phase samples to this file, one cycle per call"},
			&cli.StringFlag{Name: "dump-modulated", Usage: "append modulated 44.1kHz stereo PCM to this file"},
			&cli.BoolFlag{Name: "realtime", Usage: "pace ticks to wall-clock time instead of running flat out"},
			&cli.BoolFlag{Name: "monitor", Usage: "open a live status view instead of running headless"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := DefaultConfig()
	cfg.ROMOddPath = c.String("rom-odd")
	cfg.ROMEvenPath = c.String("rom-even")
	cfg.RAMSize = c.Int("ram-size")
	cfg.UARTBasePort = c.Int("uart-port")
	cfg.RawDumpPath = c.String("dump-raw")
	cfg.ModulatedDumpPath = c.String("dump-modulated")
	cfg.Realtime = c.Bool("realtime")
	cfg.Monitor = c.Bool("monitor")
	if c.Bool("unimplemented-ones") {
		cfg.Unimplemented = UnimplementedReadsOnes
	}

	mode, err := ParseNavMode(c.String("nav-mode"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	cfg.Mode = mode

	m, err := NewMachine(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer m.Close()

	driver := NewTickDriver(nullCPUEngine{}, m.Interrupt, cfg.Realtime)

	stop := make(chan struct{})

	if cfg.Monitor {
		snaps := make(chan Snapshot, 1)
		driver.AttachMonitor(snaps, m.Generator, m.UART)
		go driver.Run(stop)

		p := NewMonitorProgram(snaps)
		if _, err := p.Run(); err != nil {
			close(stop)
			return cli.Exit(err.Error(), 1)
		}
		close(stop)
		return nil
	}

	driver.Run(stop)
	return nil
}
