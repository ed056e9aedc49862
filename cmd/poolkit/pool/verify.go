// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/charpool"
	"github.com/bureau-foundation/poolkit/lib/digest"
	"github.com/bureau-foundation/poolkit/lib/propbag"
	"github.com/bureau-foundation/poolkit/lib/tui"
)

type verifyParams struct {
	cli.ConfigParams
	cli.JSONOutput
}

type verifyCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

type verifyResult struct {
	Path       string        `json:"path"`
	Digest     digest.Hash   `json:"digest"`
	Size       int           `json:"size"`
	Characters int           `json:"characters"`
	Checks     []verifyCheck `json:"checks"`
}

func (r verifyResult) ok() bool {
	for _, check := range r.Checks {
		if !check.OK {
			return false
		}
	}
	return true
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check that pools decode and re-encode byte for byte",
		Description: `Decode each pool and encode it again, once as a raw property tree
and once through the character mapping, and compare the result with
the file on disk. A pool that passes can be edited without poolkit
changing anything but the edited fields.

Exits with status 1 when any check fails.`,
		Usage: "poolkit verify <pool>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Verify every pool in the game's pool directory",
				Command:     "poolkit verify ~/.local/share/XCOM2/CharacterPool/*.bin",
			},
		},
		Params: func() any { return &params },
		Args:   cli.MinimumArgs(1),
		Run: func(args []string) error {
			cfg, logger, err := params.Setup("verify")
			if err != nil {
				return err
			}
			paths := make([]string, 0, len(args))
			for _, argument := range args {
				paths = append(paths, cfg.ResolvePool(argument))
			}
			results := verifyPools(paths)
			for _, result := range results {
				logger.Debug("verified pool", "path", result.Path, "ok", result.ok(), "digest", result.Digest.Short())
			}
			return reportVerify(os.Stdout, results, params.JSONOutput)
		},
	}
}

func verifyPools(paths []string) []verifyResult {
	results := make([]verifyResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, verifyPool(path))
	}
	return results
}

func verifyPool(path string) verifyResult {
	result := verifyResult{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		result.Checks = append(result.Checks, verifyCheck{Name: "read", Detail: err.Error()})
		return result
	}
	result.Size = len(data)
	result.Digest = digest.Pool(data)

	file, err := propbag.Decode(data)
	if err != nil {
		result.Checks = append(result.Checks, verifyCheck{Name: "decode", Detail: err.Error()})
		return result
	}
	result.Checks = append(result.Checks, verifyCheck{Name: "decode", OK: true})
	result.Checks = append(result.Checks, compareEncoding("property tree", result.Digest, func() ([]byte, error) {
		return propbag.Encode(file)
	}))

	pool, err := charpool.FromFile(filepath.Base(path), file)
	if err != nil {
		result.Checks = append(result.Checks, verifyCheck{Name: "character pool", Detail: err.Error()})
		return result
	}
	result.Characters = len(pool.Characters)
	result.Checks = append(result.Checks, compareEncoding("character pool", result.Digest, pool.Encode))
	return result
}

// compareEncoding runs encode and compares the digest of its output
// with want.
func compareEncoding(name string, want digest.Hash, encode func() ([]byte, error)) verifyCheck {
	encoded, err := encode()
	if err != nil {
		return verifyCheck{Name: name, Detail: err.Error()}
	}
	if got := digest.Pool(encoded); got != want {
		return verifyCheck{
			Name:   name,
			Detail: fmt.Sprintf("re-encoded to %s (%d bytes), file is %s", got.Short(), len(encoded), want.Short()),
		}
	}
	return verifyCheck{Name: name, OK: true}
}

func reportVerify(w io.Writer, results []verifyResult, output cli.JSONOutput) error {
	failed := 0
	for _, result := range results {
		if !result.ok() {
			failed++
		}
	}

	if done, err := output.EmitJSON(w, results); done {
		if err != nil {
			return err
		}
		if failed > 0 {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}

	for _, result := range results {
		detail := fmt.Sprintf("%d characters, %d bytes, %s", result.Characters, result.Size, result.Digest.Short())
		if err := tui.RenderStatus(w, tui.DefaultTheme, result.ok(), result.Path, detail); err != nil {
			return err
		}
		for _, check := range result.Checks {
			if check.OK {
				continue
			}
			if err := tui.RenderStatus(w, tui.DefaultTheme, false, "  "+check.Name, check.Detail); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
