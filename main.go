package main

import (
	"context"
	"os"

	"github.com/sethvargo/go-githubactions"
	"github.com/sirupsen/logrus"

	"github.com/release-ops/release-action/releaser"
	"github.com/release-ops/release-action/runner"
	"github.com/release-ops/release-action/seeder"
)

func main() {
	if os.Getenv("RUNNER_DEBUG") == "1" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	a := githubactions.New()
	r := &runner.Runner{
		Action: a,
		Getenv: os.Getenv,
		Seeder: &seeder.Seeder{},
		NewReleaser: func(token string) releaser.Releaser {
			return &releaser.GitReleaser{Path: ".", Token: token}
		},
	}
	if err := r.Run(context.Background()); err != nil {
		a.Fatalf("%v", err)
	}
}
