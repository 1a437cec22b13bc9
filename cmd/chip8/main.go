package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 / SUPER-CHIP emulator"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend to use (terminal, sdl2)",
			Value: "terminal",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.IntFlag{
			Name:  "cycles",
			Usage: "Instructions executed per frame",
			Value: chip8.DefaultCyclesPerFrame,
		},
		cli.Uint64Flag{
			Name:  "seed",
			Usage: "Seed for the random opcode (0 = non-deterministic)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Show a disassembly line of the next instruction",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "vf-reset",
			Usage: "Quirk: clear VF before register-to-register opcodes",
		},
		cli.BoolFlag{
			Name:  "shift-y",
			Usage: "Quirk: shift opcodes read VY instead of VX",
		},
		cli.StringFlag{
			Name:  "load-quirk",
			Usage: "Quirk: I after FX55/FX65 (unchanged, x, x+1)",
			Value: "unchanged",
		},
		cli.BoolFlag{
			Name:  "jump-vx",
			Usage: "Quirk: BXNN jumps to VX+NN instead of V0+NNN",
		},
		cli.BoolFlag{
			Name:  "wrap",
			Usage: "Quirk: sprites wrap around the display edges",
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	emu, err := chip8.NewWithFile(romPath)
	if err != nil {
		return err
	}

	emu.SetCyclesPerFrame(c.Int("cycles"))

	quirks, err := quirksFromFlags(c)
	if err != nil {
		return err
	}
	emu.SetQuirks(quirks)

	if seed := c.Uint64("seed"); seed != 0 {
		rng := rand.New(rand.NewPCG(seed, seed))
		emu.SetRandom(func() uint8 { return uint8(rng.UintN(256)) })
	}

	b, limiter, err := pickBackend(c, romPath)
	if err != nil {
		return err
	}

	config := backend.Config{
		Title:     "chip8 - " + romPath,
		ShowDebug: c.Bool("debug"),
		DebugLine: emu.DebugLine,
	}
	if err := b.Init(config); err != nil {
		return err
	}
	defer b.Cleanup()

	return runLoop(emu, b, limiter)
}

func pickBackend(c *cli.Context, romPath string) (backend.Backend, timing.Limiter, error) {
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return nil, nil, errors.New("headless mode requires --frames option with a positive value")
		}

		snapshots, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return nil, nil, err
		}

		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		slog.SetDefault(slog.New(handler))

		return headless.New(frames, snapshots), timing.NewNoOpLimiter(), nil
	}

	switch name := c.String("backend"); name {
	case "terminal":
		return terminal.New(), timing.NewFrameLimiter(), nil
	case "sdl2":
		return sdl2.New(), timing.NewFrameLimiter(), nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", name)
	}
}

func quirksFromFlags(c *cli.Context) (cpu.Quirks, error) {
	q := cpu.DefaultQuirks()

	q.VFReset = c.Bool("vf-reset")
	q.ScreenWrap = c.Bool("wrap")
	if c.Bool("shift-y") {
		q.Shifting = cpu.ShiftVY
	}
	if c.Bool("jump-vx") {
		q.Jump = cpu.JumpVX
	}

	switch mode := c.String("load-quirk"); mode {
	case "unchanged":
		q.RegSaveLoad = cpu.SaveLoadUnchanged
	case "x":
		q.RegSaveLoad = cpu.SaveLoadAdvanceX
	case "x+1":
		q.RegSaveLoad = cpu.SaveLoadAdvanceXPlusOne
	default:
		return q, fmt.Errorf("unknown load-quirk %q", mode)
	}

	return q, nil
}

func runLoop(emu *chip8.Machine, b backend.Backend, limiter timing.Limiter) error {
	for {
		if err := emu.RunUntilFrame(); err != nil {
			return err
		}

		events, err := b.Update(emu.GetCurrentFrame(), emu.Beeping())
		if err != nil {
			return err
		}

		for _, ev := range events {
			if ev.Action == action.EmulatorQuit && ev.Type == event.Press {
				return nil
			}
			emu.HandleAction(ev.Action, ev.Type)
		}

		limiter.WaitForNextFrame()
	}
}
