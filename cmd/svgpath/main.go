// Command svgpath measures and rewrites SVG path data.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"honnef.co/go/svgpath"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "svgpath: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	name string
	help string
	run  func(env *env, p svgpath.Path) error
}

var commands = []command{
	{"bbox", "print the bounding box", cmdBBox},
	{"length", "print the arc length", cmdLength},
	{"reverse", "print the path traversed backwards", cmdReverse},
	{"transform", "print the path transformed by -matrix", cmdTransform},
	{"curves", "print the path with arcs converted to cubic Béziers", cmdCurves},
	{"sample", "print -samples points evenly spaced along the path", cmdSample},
	{"normalize", "print the path with absolute, explicit commands", cmdNormalize},
}

// env is the state shared by all commands.
type env struct {
	cfg    Config
	matrix svgpath.Affine
	hasAff bool
	out    io.Writer
	log    *slog.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("svgpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file")
	format := fs.String("format", "text", "Output format (text, yaml)")
	precision := fs.Int("precision", 0, "Maximum number of decimals in path data (0: as needed)")
	relative := fs.Bool("relative", false, "Write relative commands")
	short := fs.Bool("short", false, "Write H and V for axis-aligned lines")
	smooth := fs.Bool("smooth", false, "Write S and T where control points are reflections")
	matrix := fs.String("matrix", "", "Transformation for the transform command, as \"a b c d e f\" or an SVG transform list")
	samples := fs.Int("samples", 10, "Number of points for the sample command")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: svgpath [flags] <command> [path data]\n\n")
		fmt.Fprintf(stderr, "Measure and rewrite SVG path data. Path data is read from standard input\n")
		fmt.Fprintf(stderr, "if it is not given as an argument.\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		for _, cmd := range commands {
			fmt.Fprintf(stderr, "  %-10s %s\n", cmd.name, cmd.help)
		}
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  svgpath length 'M0,0 L10,0 L10,10'\n")
		fmt.Fprintf(stderr, "  svgpath -matrix 'translate(10 0) scale(2)' transform < path.txt\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	prev := svgpath.Logger()
	svgpath.SetLogger(logger)
	defer svgpath.SetLogger(prev)

	cfg, err := loadConfig(*configPath, logger)
	if err != nil {
		return err
	}
	// Flags given explicitly override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "precision":
			cfg.SVG.MaxPrecision = *precision
		case "relative":
			cfg.SVG.Relative = *relative
		case "short":
			cfg.SVG.Short = *short
		case "smooth":
			cfg.SVG.Smooth = *smooth
		case "samples":
			cfg.Samples = *samples
		}
	})
	if err := cfg.validate(); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 1 {
		fs.Usage()
		return fmt.Errorf("command required")
	}
	var cmd *command
	for i := range commands {
		if commands[i].name == rest[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	e := &env{cfg: cfg, out: stdout, log: logger}
	if *matrix != "" {
		e.matrix, err = svgpath.ParseAffine(*matrix)
		if err != nil {
			return err
		}
		e.hasAff = true
	}

	var data string
	if len(rest) > 1 {
		data = strings.Join(rest[1:], " ")
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read path data: %w", err)
		}
		data = string(b)
	}
	p, err := svgpath.Parse(data)
	if err != nil {
		return err
	}
	logger.Debug("parsed path", "command", cmd.name, "segments", p.Len())
	return cmd.run(e, p)
}

func (e *env) emit(text string, report any) error {
	if e.cfg.Format == "yaml" {
		enc := yaml.NewEncoder(e.out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := fmt.Fprintln(e.out, text)
	return err
}

type pathReport struct {
	Path          string                 `yaml:"path"`
	Matrix        []float64              `yaml:"matrix,omitempty"`
	Decomposition *svgpath.Decomposition `yaml:"decomposition,omitempty"`
}

func (e *env) emitPath(p svgpath.Path) error {
	s := p.SVG(e.cfg.SVG)
	return e.emit(s, pathReport{Path: s})
}

type bboxReport struct {
	X0     float64 `yaml:"x0"`
	Y0     float64 `yaml:"y0"`
	X1     float64 `yaml:"x1"`
	Y1     float64 `yaml:"y1"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func cmdBBox(e *env, p svgpath.Path) error {
	r := p.BoundingBox()
	return e.emit(
		fmt.Sprintf("%g %g %g %g", r.X0, r.Y0, r.X1, r.Y1),
		bboxReport{r.X0, r.Y0, r.X1, r.Y1, r.Width(), r.Height()},
	)
}

func cmdLength(e *env, p svgpath.Path) error {
	l := p.Length()
	return e.emit(fmt.Sprintf("%g", l), map[string]float64{"length": l})
}

func cmdReverse(e *env, p svgpath.Path) error {
	return e.emitPath(p.Reverse())
}

func cmdTransform(e *env, p svgpath.Path) error {
	if !e.hasAff {
		return fmt.Errorf("transform: -matrix is required")
	}
	dec := e.matrix.Decompose()
	coef := e.matrix.Coefficients()
	e.log.Debug("transform", "matrix", coef, "decomposition", dec)
	s := p.Transform(e.matrix).SVG(e.cfg.SVG)
	return e.emit(s, pathReport{Path: s, Matrix: coef[:], Decomposition: &dec})
}

func cmdCurves(e *env, p svgpath.Path) error {
	return e.emitPath(p.ToCurves())
}

func cmdNormalize(e *env, p svgpath.Path) error {
	return e.emitPath(p)
}

type sample struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// Angle is the direction of the tangent in degrees.
	Angle float64 `yaml:"angle"`
}

func cmdSample(e *env, p svgpath.Path) error {
	if p.IsEmpty() {
		return fmt.Errorf("sample: %w", svgpath.ErrEmptyPath)
	}
	n := e.cfg.Samples
	out := make([]sample, n)
	lines := make([]string, n)
	for i := range n {
		frac := float64(i) / float64(n-1)
		pt := p.PointAt(frac)
		angle := p.TangentAt(frac).Angle() * 180 / math.Pi
		out[i] = sample{pt.X, pt.Y, angle}
		lines[i] = fmt.Sprintf("%g %g %g", pt.X, pt.Y, angle)
	}
	return e.emit(strings.Join(lines, "\n"), out)
}
