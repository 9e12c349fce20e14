// This file is part of Lockstep.
//
// Lockstep is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Lockstep is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Lockstep.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jetsetilly/lockstep/capture"
	"github.com/jetsetilly/lockstep/console"
	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/digest"
	"github.com/jetsetilly/lockstep/environment"
	"github.com/jetsetilly/lockstep/eval"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/host/desktop"
	"github.com/jetsetilly/lockstep/host/sim"
	"github.com/jetsetilly/lockstep/logger"
	"github.com/jetsetilly/lockstep/modalflag"
	"github.com/jetsetilly/lockstep/paths"
	"github.com/jetsetilly/lockstep/performance"
	"github.com/jetsetilly/lockstep/prefs"
	"github.com/jetsetilly/lockstep/recorder"
	"github.com/jetsetilly/lockstep/script"
	"github.com/jetsetilly/lockstep/statsview"
	"github.com/jetsetilly/lockstep/task"
	"github.com/jetsetilly/lockstep/turn"
	"github.com/jetsetilly/lockstep/version"
	"golang.org/x/term"
)

// exit values
const (
	exitParse = 10
	exitMode  = 20
)

// number of log entries shown after an error
const tailLength = 10

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// ctrl-c cancels the context. the frame loop notices between frames so
	// recordings and transcripts are closed in an orderly way
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		fmt.Print("\r")
		cancel()
	}()

	exitVal := launch(ctx, cancel, os.Args[1:], os.Stdout)
	cancel()
	os.Exit(exitVal)
}

// launch parses the command line and runs the selected mode. The return
// value is the exit value of the program.
func launch(ctx context.Context, cancel context.CancelFunc, args []string, output io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("PLAY", "RECORD", "CONSOLE", "TURN", "VERIFY", "VERSION")
	md.AdditionalHelp(version.Version().String())

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	switch md.Mode() {
	case "PLAY":
		err = play(ctx, md, cfg, output)

	case "RECORD":
		err = record(ctx, cancel, md, cfg, output)

	case "CONSOLE":
		err = interact(ctx, md, cfg, output)

	case "TURN":
		err = solve(md, output)

	case "VERIFY":
		err = verify(ctx, md, cfg, output)

	case "VERSION":
		fmt.Fprintln(output, version.Version())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		if !cfg.Log {
			logger.Tail(output, tailLength)
		}
		return exitMode
	}

	return 0
}

// flags shared by the modes that drive a host
type common struct {
	host    *string
	log     *bool
	prefs   *string
	profile *string

	// nil if statsview is not available in this build
	stats *bool
}

func addCommon(md *modalflag.Modes, cfg config) *common {
	c := &common{
		host:    md.AddString("host", cfg.Host, "host to drive: sim, desktop"),
		log:     md.AddBool("log", cfg.Log, "echo log to stderr"),
		prefs:   md.AddString("prefs", "", "preference overrides: key::value; key::value"),
		profile: md.AddString("profile", "none", "run through profiler: cpu, mem, trace, all"),
	}
	if statsview.Available() {
		c.stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return c
}

// apply the common flags. The command line preferences are pushed onto the
// prefs stack and must be popped by the caller.
func (c *common) apply(cfg config, output io.Writer) (performance.Profile, error) {
	if *c.log {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			logger.SetEcho(logger.NewColorizer(os.Stderr), true)
		} else {
			logger.SetEcho(os.Stderr, true)
		}
	} else {
		logger.SetEcho(nil, false)
	}

	if c.stats != nil && *c.stats {
		statsview.Launch(output)
	}

	prefs.PushCommandLineStack(cfg.overrides(*c.prefs))

	return performance.ParseProfileString(*c.profile)
}

// selectHost creates the named host for the modes that have no live input.
func selectHost(name string) (host.Host, error) {
	switch strings.ToLower(name) {
	case "sim":
		p, err := sim.NewPreferences()
		if err != nil {
			return nil, err
		}
		return sim.NewSim(logger.Allow, p, sim.NewWallClock(), nil), nil

	case "desktop":
		return desktop.NewDesktop(logger.Allow)
	}

	return nil, fmt.Errorf("unknown host (%s)", name)
}

// parseSpans parses a list of frame ranges of the form "from:to, from:to".
func parseSpans(s string) ([]sim.Span, error) {
	var spans []sim.Span
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		from, to, ok := strings.Cut(f, ":")
		if !ok {
			return nil, fmt.Errorf("frame range must be from:to (%s)", f)
		}
		var sp sim.Span
		var err error
		if sp.From, err = strconv.Atoi(strings.TrimSpace(from)); err != nil {
			return nil, fmt.Errorf("frame range must be from:to (%s)", f)
		}
		if sp.To, err = strconv.Atoi(strings.TrimSpace(to)); err != nil {
			return nil, fmt.Errorf("frame range must be from:to (%s)", f)
		}
		if sp.To < sp.From {
			return nil, fmt.Errorf("frame range is backwards (%s)", f)
		}
		spans = append(spans, sp)
	}
	return spans, nil
}

// newTerminal returns a raw terminal if stdin is a terminal and a plain
// terminal otherwise. The returned function restores the terminal.
func newTerminal(output io.Writer, names []string) (console.Terminal, func()) {
	rt, err := console.NewRawTerminal(os.Stdin, output)
	if err == nil {
		rt.SetNames(names)
		return rt, rt.CleanUp
	}
	if !curated.Is(err, console.NotATerminal) {
		logger.Log(logger.Allow, "lockstep", err)
	}
	return console.NewPlainTerminal(os.Stdin, output), func() {}
}

// summary prints the number of frames and the effective frame rate.
func summary(output io.Writer, h host.Host, frames int, elapsed time.Duration) {
	if frames == 0 || elapsed <= 0 {
		fmt.Fprintf(output, "! %d frames\n", frames)
		return
	}
	fps, accuracy := performance.CalcFPS(h.FrameTime(), frames, elapsed.Seconds())
	fmt.Fprintf(output, "! %d frames in %.2fs (%.2f fps, %.1f%%)\n", frames, elapsed.Seconds(), fps, accuracy)
}

func play(ctx context.Context, md *modalflag.Modes, cfg config, output io.Writer) error {
	md.NewMode()

	c := addCommon(md, cfg)
	check := md.AddBool("verify", false, "compare the digest of the replay with the recording")
	entry := md.AddString("entry", script.Entry, "procedure to run")
	movies := md.AddString("movies", "", "cut-scenes for the sim host: from:to, from:to")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	profile, err := c.apply(cfg, output)
	defer prefs.PopCommandLineStack()
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("script required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	h, err := selectHost(*c.host)
	if err != nil {
		return err
	}

	spans, err := parseSpans(*movies)
	if err != nil {
		return err
	}
	if len(spans) > 0 {
		s, ok := h.(*sim.Sim)
		if !ok {
			return fmt.Errorf("cut-scenes can only be added to the sim host")
		}
		for _, sp := range spans {
			s.AddMovie(sp)
		}
	}

	dig := digest.NewCalls(h)
	env := environment.NewEnvironment(environment.MainSession, dig)

	if *check {
		return replay(ctx, md.GetArg(0), env, dig, profile, output)
	}

	scr, err := script.Load(md.GetArg(0))
	if err != nil {
		return err
	}

	ns := eval.NewNamespace(output)
	builtins := script.NewBuiltins(dig)

	// the console is created the first time the script asks for it
	cleanUp := func() {}
	defer func() { cleanUp() }()

	builtins.SetInteractive(func() (task.Task, error) {
		cp, err := console.NewPreferences()
		if err != nil {
			return nil, err
		}
		cleanUp()
		var t console.Terminal
		t, cleanUp = newTerminal(output, builtins.Names())
		ns.SetOutput(t)
		return console.NewConsole(env, ns, t, cp), nil
	})

	root, err := scr.Start(ns, builtins, *entry)
	if err != nil {
		return err
	}

	return performance.RunProfiler(profile, "play", func() error {
		start := time.Now()
		v, err := task.Run(ctx, env, root)
		if err != nil {
			return err
		}
		summary(output, dig, env.Frame(), time.Since(start))
		if v != nil {
			fmt.Fprintf(output, "! %s returned %s\n", *entry, eval.Repr(v))
		}
		return nil
	})
}

// replay runs a recording and compares its digest with the digest of the
// replay.
func replay(ctx context.Context, filename string, env *environment.Environment, dig digest.Digest,
	profile performance.Profile, output io.Writer) error {

	plb, err := recorder.NewPlayback(filename)
	if err != nil {
		return err
	}
	plb.Output = output

	err = performance.RunProfiler(profile, "verify", func() error {
		return plb.Verify(ctx, env, dig)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "! verified %s (%d frames)\n", plb, env.Frame())
	return nil
}

func verify(ctx context.Context, md *modalflag.Modes, cfg config, output io.Writer) error {
	md.NewMode()

	c := addCommon(md, cfg)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	profile, err := c.apply(cfg, output)
	defer prefs.PopCommandLineStack()
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("recording required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	h, err := selectHost(*c.host)
	if err != nil {
		return err
	}

	dig := digest.NewCalls(h)
	env := environment.NewEnvironment(environment.MainSession, dig)

	return replay(ctx, md.GetArg(0), env, dig, profile, output)
}

func record(ctx context.Context, cancel context.CancelFunc, md *modalflag.Modes, cfg config, output io.Writer) error {
	md.NewMode()

	c := addCommon(md, cfg)
	frames := md.AddInt("frames", 0, "stop recording after number of frames (0 for no limit)")
	md.AdditionalHelp("The recording is written to the named file or to a unique file in\nthe working directory if no file is named.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	profile, err := c.apply(cfg, output)
	defer prefs.PopCommandLineStack()
	if err != nil {
		return err
	}

	var filename string
	switch len(md.RemainingArgs()) {
	case 0:
		filename = paths.UniqueFilename("recording", "", "lss")
	case 1:
		filename = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	var h host.Host
	var capt *capture.Capture

	switch strings.ToLower(*c.host) {
	case "sim":
		sp, err := sim.NewPreferences()
		if err != nil {
			return err
		}
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		capt, err = capture.NewCapture(screen, sp, cancel)
		if err != nil {
			return err
		}
		defer capt.End()
		h = sim.NewSim(logger.Allow, sp, sim.NewWallClock(), capt)

	case "desktop":
		d, err := desktop.NewDesktop(logger.Allow)
		if err != nil {
			return err
		}

		// live input has already reached the game
		d.Inject = false
		h = d

	default:
		return fmt.Errorf("unknown host (%s)", *c.host)
	}

	rp, err := recorder.NewPreferences()
	if err != nil {
		return err
	}

	dig := digest.NewCalls(h)
	env := environment.NewEnvironment(environment.MainSession, dig)

	rec, err := recorder.NewRecorder(env, filename, rp, dig)
	if err != nil {
		return err
	}
	rec.MaxFrames = *frames

	var root task.Task = rec
	if capt != nil {
		root = task.TaskFunc(func(v task.Value) (task.Outcome, error) {
			mode := "fixed"
			if rec.IsFreeRunning() {
				mode = "free-running"
			}
			capt.SetStatus(fmt.Sprintf(" %s | %s | %d ticks | ctrl-c to finish", rec, mode, rec.MinDuration()))
			return rec.Step(v)
		})
	}

	start := time.Now()
	err = performance.RunProfiler(profile, "record", func() error {
		_, err := task.Run(ctx, env, root)
		return err
	})
	elapsed := time.Since(start)

	// interrupting the recording is the normal way of finishing
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if endErr := rec.End(); err == nil {
		err = endErr
	}

	if capt != nil {
		capt.End()
	}

	if err != nil {
		return err
	}

	summary(output, dig, rec.Frames(), elapsed)
	fmt.Fprintf(output, "! recording written to %s\n", filename)

	return nil
}

// interact runs the console as the root task.
func interact(ctx context.Context, md *modalflag.Modes, cfg config, output io.Writer) error {
	md.NewMode()

	c := addCommon(md, cfg)
	transcript := md.AddString("transcript", "", "write the session to a script file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	profile, err := c.apply(cfg, output)
	defer prefs.PopCommandLineStack()
	if err != nil {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	h, err := selectHost(*c.host)
	if err != nil {
		return err
	}

	env := environment.NewEnvironment(environment.MainSession, h)
	builtins := script.NewBuiltins(h)

	t, cleanUp := newTerminal(output, builtins.Names())
	defer cleanUp()

	ns := eval.NewNamespace(t)
	if err := builtins.Bind(ns, "*"); err != nil {
		return err
	}

	cp, err := console.NewPreferences()
	if err != nil {
		return err
	}
	con := console.NewConsole(env, ns, t, cp)

	if *transcript != "" {
		f, err := os.Create(*transcript)
		if err != nil {
			return err
		}
		defer f.Close()

		scribe := script.NewScribe(f)
		scribe.WriteHeader("*")
		if err := scribe.WriteProcedure(script.Entry); err != nil {
			return err
		}
		con.SetScribe(scribe)
	}

	start := time.Now()
	err = performance.RunProfiler(profile, "console", func() error {
		_, err := task.Run(ctx, env, con)
		return err
	})

	// the console task is not stepped again after an interrupt
	if endErr := con.End(); endErr != nil && err == nil {
		err = endErr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	summary(output, h, env.Frame(), time.Since(start))
	fmt.Fprintf(output, "! %d statements\n", con.Statements())

	return nil
}

// solve prints the pointer delta for each target rotation.
func solve(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	dt := md.AddFloat64("dt", 1.0/60.0, "frame duration in seconds")
	accel := md.AddFloat64("accel", turn.DefaultAcceleration, "camera acceleration")
	md.AdditionalHelp("Targets are in turn units. A full rotation is 65536 units. Negative\ntargets must follow -- so they are not mistaken for flags.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("target rotation required for %s mode", md)
	}

	for _, a := range md.RemainingArgs() {
		target, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("target rotation must be a whole number (%s)", a)
		}
		delta, err := turn.Compute(target, *dt, *accel)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%d: %d (%d)\n", target, delta, turn.Apply(delta, *dt, *accel))
	}

	return nil
}
