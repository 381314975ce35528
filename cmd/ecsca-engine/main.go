// Command ecsca-engine runs the TLV command-frame server spec.md §5/§6
// describe: it reads one configuration up front (curve model, coordinate
// system, scalar-mult algorithm, reduction backend, hash, random-scalar
// method), builds the process-wide engine singleton, and then serves
// command frames on stdin/stdout until EOF.
//
// Flag and env-var wiring follows ethereum-go-ethereum's cmd/geth: a
// single github.com/urfave/cli/v2 App, each flag carrying both a CLI name
// and an ECSCA_* EnvVars entry (internal/flags/flags_test.go shows geth's
// BigFlag doing the same two-source binding for its own flags).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/J08nY/ecsca-engine/command"
	"github.com/J08nY/ecsca-engine/curve"
	"github.com/J08nY/ecsca-engine/engine"
	"github.com/J08nY/ecsca-engine/formula"
	"github.com/J08nY/ecsca-engine/hashselect"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/reduction"
	"github.com/J08nY/ecsca-engine/scalarmult"
)

var (
	curveModelFlag = &cli.StringFlag{
		Name:    "curve-model",
		Usage:   "curve model: weierstrass, montgomery, edwards, or twisted-edwards",
		Value:   "weierstrass",
		EnvVars: []string{"ECSCA_CURVE_MODEL"},
	}
	coordsFlag = &cli.StringFlag{
		Name:    "coords",
		Usage:   "coordinate system: affine, jacobian, montgomery-xz, or extended-edwards",
		Value:   "jacobian",
		EnvVars: []string{"ECSCA_COORDS"},
	}
	multFlag = &cli.StringFlag{
		Name:    "mult",
		Usage:   "scalar multiplication algorithm",
		Value:   "ltr",
		EnvVars: []string{"ECSCA_MULT"},
	}
	reductionFlag = &cli.StringFlag{
		Name:    "reduction",
		Usage:   "modular reduction backend: none, barrett, or montgomery",
		Value:   "barrett",
		EnvVars: []string{"ECSCA_REDUCTION"},
	}
	hashFlag = &cli.StringFlag{
		Name:    "hash",
		Usage:   "hash algorithm for ECDSA/ECDH: none, sha1, sha224, sha256, sha384, sha512",
		Value:   "sha256",
		EnvVars: []string{"ECSCA_HASH"},
	}
	randomMethodFlag = &cli.StringFlag{
		Name:    "random-method",
		Usage:   "scalar sampling method: reject or reduce",
		Value:   "reject",
		EnvVars: []string{"ECSCA_RANDOM_METHOD"},
	}
	completeFlag = &cli.BoolFlag{
		Name:    "complete",
		Usage:   "process scalar bits up to the group order's bit length rather than the scalar's own",
		Value:   true,
		EnvVars: []string{"ECSCA_COMPLETE"},
	}
	windowFlag = &cli.IntFlag{
		Name:    "window",
		Usage:   "window width, for windowed multipliers (wnaf, fixed-window, comb, bgmw, sliding-window)",
		Value:   4,
		EnvVars: []string{"ECSCA_WINDOW"},
	}
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "slog level: debug, info, warn, or error",
		Value:   "info",
		EnvVars: []string{"ECSCA_LOG_LEVEL"},
	}
)

func main() {
	app := &cli.App{
		Name:  "ecsca-engine",
		Usage: "configurable elliptic-curve engine for side-channel research",
		Flags: []cli.Flag{
			curveModelFlag, coordsFlag, multFlag, reductionFlag,
			hashFlag, randomMethodFlag, completeFlag, windowFlag, logLevelFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	logger := newLogger(ctx.String(logLevelFlag.Name))

	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}

	e, err := engine.Init(cfg)
	if err != nil {
		return fmt.Errorf("initialising engine: %w", err)
	}
	defer engine.Deinit()

	logger.Info("engine initialised",
		"curve_model", cfg.Model.String(),
		"coords", cfg.System.String(),
		"mult", ctx.String(multFlag.Name),
		"reduction", ctx.String(reductionFlag.Name),
		"hash", ctx.String(hashFlag.Name),
	)

	d := command.NewDispatcher(e, os.Stdout)
	if err := d.Serve(os.Stdin); err != nil {
		return fmt.Errorf("serving command frames: %w", err)
	}
	logger.Info("command stream closed")
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// buildConfig resolves the CLI/env surface into an engine.Config, picking
// the FormulaSet that matches the requested curve model and coordinate
// system the way Config.Add pairs one addition formula with whichever
// Multiplier the command-line named.
func buildConfig(ctx *cli.Context) (engine.Config, error) {
	model, err := parseModel(ctx.String(curveModelFlag.Name))
	if err != nil {
		return engine.Config{}, err
	}
	system, err := parseSystem(ctx.String(coordsFlag.Name))
	if err != nil {
		return engine.Config{}, err
	}
	red, err := parseReduction(ctx.String(reductionFlag.Name))
	if err != nil {
		return engine.Config{}, err
	}
	algorithm, err := parseHash(ctx.String(hashFlag.Name))
	if err != nil {
		return engine.Config{}, err
	}
	randomMethod, err := parseRandomMethod(ctx.String(randomMethodFlag.Name))
	if err != nil {
		return engine.Config{}, err
	}

	formulas, add, err := formulasFor(model, system)
	if err != nil {
		return engine.Config{}, err
	}

	multCfg := scalarmult.Config{
		Complete: ctx.Bool(completeFlag.Name),
		Width:    ctx.Int(windowFlag.Name),
		Base:     ctx.Int(windowFlag.Name),
	}
	mult, err := multiplierFor(ctx.String(multFlag.Name), multCfg, formulas)
	if err != nil {
		return engine.Config{}, err
	}

	return engine.Config{
		Model:      model,
		System:     system,
		Reduction:  red,
		Multiplier: mult,
		Add:        add,
		Hash:       algorithm,
		RandomMod:  randomMethod,
	}, nil
}

func parseModel(name string) (curve.Model, error) {
	switch name {
	case "weierstrass":
		return curve.Weierstrass, nil
	case "montgomery":
		return curve.Montgomery, nil
	case "edwards":
		return curve.Edwards, nil
	case "twisted-edwards":
		return curve.TwistedEdwards, nil
	default:
		return 0, fmt.Errorf("unsupported curve model %q", name)
	}
}

func parseSystem(name string) (point.System, error) {
	switch name {
	case "affine":
		return point.Affine, nil
	case "jacobian":
		return point.Jacobian, nil
	case "montgomery-xz":
		return point.MontgomeryXZ, nil
	case "extended-edwards":
		return point.ExtendedEdwards, nil
	default:
		return point.System{}, fmt.Errorf("unsupported coordinate system %q", name)
	}
}

func parseReduction(name string) (reduction.Kind, error) {
	switch name {
	case "none":
		return reduction.None, nil
	case "barrett":
		return reduction.Barrett, nil
	case "montgomery":
		return reduction.Montgomery, nil
	default:
		return 0, fmt.Errorf("unsupported reduction backend %q", name)
	}
}

func parseHash(name string) (hashselect.Algorithm, error) {
	switch name {
	case "none":
		return hashselect.None, nil
	case "sha1":
		return hashselect.SHA1, nil
	case "sha224":
		return hashselect.SHA224, nil
	case "sha256":
		return hashselect.SHA256, nil
	case "sha384":
		return hashselect.SHA384, nil
	case "sha512":
		return hashselect.SHA512, nil
	default:
		return 0, fmt.Errorf("unsupported hash %q", name)
	}
}

func parseRandomMethod(name string) (engine.RandomMethod, error) {
	switch name {
	case "reject":
		return engine.SampleAndReject, nil
	case "reduce":
		return engine.Reduce, nil
	default:
		return 0, fmt.Errorf("unsupported random-method %q", name)
	}
}

// formulasFor pairs a curve model and coordinate system with the formulas
// package's building blocks.
func formulasFor(model curve.Model, system point.System) (scalarmult.FormulaSet, *formula.Working, error) {
	switch {
	case model == curve.Weierstrass && system == point.Jacobian:
		add := formula.WeierstrassJacobianAdd().Init()
		return scalarmult.FormulaSet{
			Add: add,
			Dbl: formula.WeierstrassJacobianDoubleA3().Init(),
			Neg: formula.WeierstrassJacobianNeg().Init(),
			Scl: formula.WeierstrassJacobianScl().Init(),
		}, add, nil
	case model == curve.Montgomery && system == point.MontgomeryXZ:
		return scalarmult.FormulaSet{
			Ladd: formula.MontgomeryLadd().Init(),
			Dbl:  formula.MontgomeryDbl().Init(),
		}, nil, nil
	case (model == curve.Edwards || model == curve.TwistedEdwards) && system == point.ExtendedEdwards:
		add := formula.ExtendedEdwardsAdd().Init()
		return scalarmult.FormulaSet{
			Add: add,
			Dbl: formula.ExtendedEdwardsDbl().Init(),
			Neg: formula.ExtendedEdwardsNeg().Init(),
		}, add, nil
	default:
		return scalarmult.FormulaSet{}, nil, fmt.Errorf("no formulas wired for curve model %q over coordinate system %q", model, system)
	}
}

// multiplierFor builds the named scalar-multiplication algorithm, per
// spec.md §4.6's thirteen variants.
func multiplierFor(name string, cfg scalarmult.Config, formulas scalarmult.FormulaSet) (scalarmult.Multiplier, error) {
	switch name {
	case "ltr":
		return scalarmult.NewLTRMultiplier(cfg, formulas), nil
	case "rtl":
		return scalarmult.NewRTLMultiplier(cfg, formulas), nil
	case "binary-naf":
		return scalarmult.NewBinaryNAFMultiplier(cfg, formulas), nil
	case "width-naf":
		return scalarmult.NewWidthNAFMultiplier(cfg, formulas), nil
	case "fixed-window":
		return scalarmult.NewFixedWindowMultiplier(cfg, formulas), nil
	case "sliding-window":
		return scalarmult.NewSlidingWindowMultiplier(cfg, formulas), nil
	case "bgmw":
		return scalarmult.NewBGMWMultiplier(cfg, formulas), nil
	case "comb":
		return scalarmult.NewCombMultiplier(cfg, formulas), nil
	case "coron":
		return scalarmult.NewCoronMultiplier(cfg, formulas), nil
	case "full-precomp":
		return scalarmult.NewFullPrecomputationMultiplier(cfg, formulas), nil
	case "ladder-simple":
		return scalarmult.NewSimpleLadderMultiplier(cfg, formulas), nil
	case "ladder-differential":
		return scalarmult.NewDifferentialLadderMultiplier(cfg, formulas), nil
	case "ladder-combined":
		return scalarmult.NewCombinedLadderMultiplier(cfg, formulas), nil
	default:
		return nil, fmt.Errorf("unsupported scalar-mult algorithm %q", name)
	}
}
