// Copyright 2017 The go-probeum Authors
// This file is part of go-probeum.
//
// go-probeum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-probeum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-probeum. If not, see <http://www.gnu.org/licenses/>.

// Command executor drives a Substrate-style runtime WASM blob through a
// call loop (run_task) or introspects it (get_runtime_version,
// get_metadata) from the command line, against a fixed storage snapshot
// read from a JSON task file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/AcalaNetwork/chopsticks/core/executor"
	"github.com/AcalaNetwork/chopsticks/log"
	"github.com/AcalaNetwork/chopsticks/rpc/task"
)

var (
	logLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "Log level: trace, debug, info, warn, error, crit",
		Value: "info",
	}

	taskFileFlag = cli.StringFlag{
		Name:  "task",
		Usage: "Path to a JSON-encoded TaskCall",
	}

	wasmFileFlag = cli.StringFlag{
		Name:  "wasm",
		Usage: "Path to a compiled runtime WASM blob",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "executor"
	app.Usage = "run a Substrate-style runtime WASM blob through a host-function call loop"
	app.Flags = []cli.Flag{logLevelFlag}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		runTaskCommand,
		runtimeVersionCommand,
		metadataCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) error {
	lvl, err := log.LvlFromString(ctx.GlobalString(logLevelFlag.Name))
	if err != nil {
		return err
	}
	log.SetRootHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat(false))))
	return nil
}

var runTaskCommand = cli.Command{
	Name:  "run-task",
	Usage: "execute a TaskCall and print the resulting TaskResponse as JSON",
	Flags: []cli.Flag{taskFileFlag},
	Action: func(ctx *cli.Context) error {
		call, err := readTaskCall(ctx.String(taskFileFlag.Name))
		if err != nil {
			return err
		}

		oracle := newMapOracle(seedStorageMap(call.Storage))
		log.Info("running task", "calls", len(call.Calls), "mock_signature_host", call.MockSignatureHost)

		resp := executor.RunTask(context.Background(), oracle, call)
		return printJSON(resp)
	},
}

var runtimeVersionCommand = cli.Command{
	Name:  "get-runtime-version",
	Usage: "decode and print a runtime's Core_version",
	Flags: []cli.Flag{wasmFileFlag},
	Action: func(ctx *cli.Context) error {
		wasm, err := os.ReadFile(ctx.String(wasmFileFlag.Name))
		if err != nil {
			return err
		}
		version, err := executor.GetRuntimeVersion(context.Background(), wasm)
		if err != nil {
			return err
		}
		return printJSON(version)
	},
}

var metadataCommand = cli.Command{
	Name:  "get-metadata",
	Usage: "run Metadata_metadata and print the raw result as hex",
	Flags: []cli.Flag{wasmFileFlag},
	Action: func(ctx *cli.Context) error {
		wasm, err := os.ReadFile(ctx.String(wasmFileFlag.Name))
		if err != nil {
			return err
		}
		raw, err := executor.GetMetadata(context.Background(), wasm)
		if err != nil {
			return err
		}
		return printJSON(task.HexBytes(raw))
	},
}

func readTaskCall(path string) (task.TaskCall, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return task.TaskCall{}, fmt.Errorf("executor: reading task file: %w", err)
	}
	var call task.TaskCall
	if err := json.Unmarshal(data, &call); err != nil {
		return task.TaskCall{}, fmt.Errorf("executor: decoding task file: %w", err)
	}
	return call, nil
}

func seedStorageMap(pairs []task.KeyValuePair) map[string][]byte {
	out := make(map[string][]byte, len(pairs))
	for _, p := range pairs {
		out[string(p.Key)] = p.Value
	}
	return out
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
