package main

import (
	"log"
	"os"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/register"
	"github.com/trezcool/darasa/core/roster"
	"github.com/trezcool/darasa/gateway/httpapi"
	"github.com/trezcool/darasa/services/logger"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "DARASA : ", log.LstdFlags|log.Lmicroseconds)

	var logger core.Logger
	if core.Conf.Debug || core.Conf.RollbarToken == "" {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	// the session token comes from the platform's auth screen
	token := os.Getenv("DARASA_ACCESS_TOKEN")
	client := httpapi.NewClient(core.Conf, token, logger)

	// the session record parameterizes calls when flags don't
	sess, err := account.FromToken(token)
	if err != nil && token != "" {
		logger.Warn("unusable access token", err)
	}

	cli := commandLine{
		out:          os.Stdout,
		defaultBatch: sess.BatchID,
		catalogSvc:   catalog.NewService(client),
		regSvc:       register.NewService(client),
		newSession: func(batchID string) *roster.Session {
			return roster.NewSession(client, batchID, logger)
		},
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
