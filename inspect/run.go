package inspect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"hdmerge/state"
)

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input file has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read input: %w", err)
	}
	r, err := parse(data)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", filepath.Base(src), err)
	}

	if _, err := fmt.Fprint(os.Stdout, r.String()); err != nil {
		return err
	}

	if !cmd.Bool("extract") {
		return nil
	}
	out := resourcesPath(src, cmd.Args().Get(1))
	n, err := extract(r, out, cmd.Bool("overwrite"))
	if err != nil {
		return fmt.Errorf("unable to extract resources: %w", err)
	}
	log.Info("Resources extracted", zap.Int("images", n), zap.String("file", out))
	return nil
}
