package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// interactiveCmd runs a REPL over the same subcommand dispatcher.
type interactiveCmd struct {
	r     *root
	fs    *flag.FlagSet
	execs commandList
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *interactiveCmd) Program() string {
	return i.r.Program()
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cmd := &interactiveCmd{r: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.Var(&cmd.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (i *interactiveCmd) Run() error {
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			if err := i.executeLine(line); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Fprintln(os.Stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			break
		}
		if err := i.executeLine(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return scanner.Err()
}

func (i *interactiveCmd) executeLine(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	// Nesting the REPL inside itself only recurses.
	if args[0] == "interactive" {
		return nil
	}
	return i.r.Run(args)
}
