package cli

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dkovalenko/keywarden/internal/principal"
	"github.com/dkovalenko/keywarden/internal/server/auth"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// App dispatches CLI subcommands against a vault server.
type App struct {
	endpoint string
	token    string
	out      io.Writer
}

// NewApp builds an App writing command output to out.
func NewApp(endpoint, token string, out io.Writer) *App {
	return &App{endpoint: endpoint, token: token, out: out}
}

const usage = `usage: keywarden [-s endpoint] [-token token] <command> [args]

commands:
  token -address <addr>          mint an access token (prompts for the secret key)
  add-guardian <addr>            enroll a guardian
  remove-guardian <addr>         remove a guardian
  initiate <new-owner>           start ownership recovery
  approve                        approve the pending recovery
  execute                        execute the pending recovery
  cancel                         cancel the pending recovery
  pause | unpause                flip the paused flag
  batch <target:value:hexdata>…  run an atomic call batch
  guardians                      list guardians
  recovery                       show the pending recovery
  info                           show owner, paused flag, and guardian count
`

// Run executes one subcommand. args excludes the program name and global
// flags.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]

	// token minting is local; everything else talks to the server
	if cmd == "token" {
		return a.mintToken(rest)
	}

	client, err := NewVaultClient(a.endpoint, a.token)
	if err != nil {
		return err
	}
	defer client.Close()

	switch cmd {
	case "add-guardian":
		if len(rest) != 1 {
			return fmt.Errorf("usage: add-guardian <addr>")
		}
		count, err := client.AddGuardian(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "guardian added, %d total\n", count)

	case "remove-guardian":
		if len(rest) != 1 {
			return fmt.Errorf("usage: remove-guardian <addr>")
		}
		count, err := client.RemoveGuardian(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "guardian removed, %d total\n", count)

	case "initiate":
		if len(rest) != 1 {
			return fmt.Errorf("usage: initiate <new-owner>")
		}
		if err := client.InitiateRecovery(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "recovery initiated toward %s\n", rest[0])

	case "approve":
		approvals, threshold, err := client.ApproveRecovery(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "approved: %d of %d required\n", approvals, threshold)

	case "execute":
		newOwner, err := client.ExecuteRecovery(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "recovery executed, new owner %s\n", newOwner)

	case "cancel":
		if err := client.CancelRecovery(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "recovery cancelled")

	case "pause", "unpause":
		paused := cmd == "pause"
		if err := client.SetPaused(ctx, paused); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "paused=%v\n", paused)

	case "batch":
		if len(rest) == 0 {
			return fmt.Errorf("usage: batch <target:value:hexdata>...")
		}
		targets, values, payloads, err := parseBatchArgs(rest)
		if err != nil {
			return err
		}
		results, err := client.ExecuteBatch(ctx, targets, values, payloads)
		if err != nil {
			return err
		}
		for i, r := range results {
			fmt.Fprintf(a.out, "call %d: 0x%s\n", i, hex.EncodeToString(r))
		}

	case "guardians":
		list, err := client.GetGuardians(ctx)
		if err != nil {
			return err
		}
		for _, g := range list {
			fmt.Fprintln(a.out, g)
		}

	case "recovery":
		info, err := client.GetRecoveryInfo(ctx)
		if err != nil {
			return err
		}
		if !info.Active {
			fmt.Fprintln(a.out, "no active recovery")
			return nil
		}
		fmt.Fprintf(a.out, "new owner: %s\n", info.NewOwner)
		fmt.Fprintf(a.out, "approvals: %d of %d required\n", len(info.Approvals), info.Threshold)
		fmt.Fprintf(a.out, "created: %s\n", info.CreatedAtRfc3339)

	case "info":
		info, err := client.GetAccountInfo(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "owner: %s\n", info.Owner)
		fmt.Fprintf(a.out, "paused: %v\n", info.Paused)
		fmt.Fprintf(a.out, "guardians: %d\n", info.GuardianCount)

	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}

// mintToken signs an access token for the given address using a secret key
// read from the terminal without echo.
func (a *App) mintToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	address := fs.String("address", "", "principal address (hex)")
	validity := fs.Int("t", 15, "token validity, minutes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := principal.Parse(*address)
	if err != nil {
		return fmt.Errorf("bad address: %w", err)
	}

	fmt.Fprint(a.out, "Secret key: ")
	secret, err := readPassword()
	fmt.Fprintln(a.out)
	if err != nil {
		return err
	}

	token, err := auth.GenerateToken(p, secret, time.Duration(*validity)*time.Minute)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}

// parseBatchArgs splits target:value:hexdata triples. The data part may be
// empty; the value must be a non-negative integer.
func parseBatchArgs(args []string) (targets []string, values []uint64, payloads [][]byte, err error) {
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 3)
		if len(parts) != 3 {
			return nil, nil, nil, fmt.Errorf("bad call spec %q, want target:value:hexdata", arg)
		}

		value, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("bad value in %q: %w", arg, err)
		}

		data := strings.TrimPrefix(parts[2], "0x")
		payload, err := hex.DecodeString(data)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("bad hex data in %q: %w", arg, err)
		}

		targets = append(targets, parts[0])
		values = append(values, value)
		payloads = append(payloads, payload)
	}
	return targets, values, payloads, nil
}
