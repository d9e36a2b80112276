// Command rxdemo plays small reactive applications over simulated input and
// prints what they emit.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/7vars/rxcore"
	"github.com/7vars/rxcore/rx"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	if err := runMain(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "rxdemo: %v\n", err)
		os.Exit(1)
	}
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("rxdemo", pflag.ContinueOnError)
	flags.StringP("scenario", "s", "counter", "scenario to play")
	flags.Float64("speed", 1, "time scale, 2 plays twice as fast")
	flags.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	flags.String("config", "", "config file")
	flags.Bool("list", false, "list scenarios and exit")
	return flags
}

func runMain(args []string, out io.Writer) error {
	flags := newFlags()
	if err := flags.Parse(args); err != nil {
		return err
	}
	for key, flag := range map[string]string{
		"rxdemo.scenario":  "scenario",
		"rxdemo.speed":     "speed",
		"rxcore.log.level": "log-level",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	path, _ := flags.GetString("config")
	conf, err := rxcore.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rxcore.ConfigureLogging(conf)

	if list, _ := flags.GetBool("list"); list {
		for _, name := range scenarioNames() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	loop := rxcore.NewLoop("rxdemo")
	defer func() {
		loop.Close()
		<-loop.Closed()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func(log rxcore.Logger) {
		select {
		case sig := <-sigs:
			log.Infof("receive signal: %v", sig)
			cancel()
		case <-ctx.Done():
		}
	}(loop)

	env := newEnv(loop, conf, loop.WithField("scenario", conf.GetString("rxdemo.scenario")))
	err = play(ctx, env, conf.GetStringDefault("rxdemo.scenario", "counter"), out)
	if errors.Is(err, context.Canceled) {
		env.Info("interrupted")
		return nil
	}
	return err
}

// play runs the named scenario on env's scheduler and writes every line it
// emits, stamped with the scenario time, to out.
func play(ctx context.Context, env *Env, name string, out io.Writer) error {
	scenario, ok := lookupScenario(name)
	if !ok {
		return fmt.Errorf("unknown scenario %q, have %s", name, strings.Join(scenarioNames(), ", "))
	}
	env.Infof("play %s at speed %.2f", name, env.Speed)

	src := rx.Defer(func() rx.Observable[string] {
		start := env.Sched.Now()
		return rx.Map(func(line string) string {
			return fmt.Sprintf("%8s  %s", env.Since(start), line)
		})(scenario(env))
	})
	return rx.Fprintln(ctx, env.Sched, src, out)
}
