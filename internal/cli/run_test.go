package cli_test

import (
	"bytes"
	"testing"

	"github.com/calvinalkan/keyscreen/internal/cli"
)

func Test_Bare_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	// Call Run directly without test helper (which adds --cwd)
	var stdout, stderr bytes.Buffer

	exitCode := cli.Run(nil, &stdout, &stderr, []string{"keyscreen"}, nil, nil)

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stderr.String(), ""; got != want {
		t.Errorf("stderr=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stdout.String(), "keyscreen - screen candidate keys")
	cli.AssertContains(t, stdout.String(), "screen <reference-file> <candidate-file>")
	cli.AssertContains(t, stdout.String(), "--cwd")
	cli.AssertContains(t, stdout.String(), "Usage: keyscreen [global flags] <command> [args]\n\nGlobal flags:\n")
}

func Test_Main_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		args []string
	}{
		{name: "long flag", args: []string{"--help"}},
		{name: "short flag", args: []string{"-h"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stdout, stderr, exitCode := c.Run(tt.args...)

			if got, want := exitCode, 0; got != want {
				t.Errorf("exitCode=%d, want=%d", got, want)
			}

			if got, want := stderr, ""; got != want {
				t.Errorf("stderr=%q, want=%q", got, want)
			}

			cli.AssertContains(t, stdout, "check <reference-file> [key...]")
			cli.AssertContains(t, stdout, "size -n <items> [flags]")
			cli.AssertContains(t, stdout, "repl <reference-file>")
			cli.AssertContains(t, stdout, "print-config")
		})
	}
}

func Test_Invalid_Global_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("--invalid-flag", "screen")

	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")
	cli.AssertContains(t, stderr, "Global flags:")
	cli.AssertContains(t, stderr, "--config")
}

func Test_Config_Flag_Without_Value_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("--config")

	cli.AssertContains(t, stderr, "flag requires an argument")
}

func Test_No_Command_With_Flags_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, _, exitCode := c.Run()

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, "Commands:")
}

func Test_Unknown_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("frobnicate")

	cli.AssertContains(t, stderr, "unknown command: frobnicate")
	cli.AssertContains(t, stderr, "Commands:")
}

func Test_Command_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("screen", "--help")

	cli.AssertContains(t, stdout, "Usage: keyscreen screen <reference-file> <candidate-file>")
	cli.AssertContains(t, stdout, "--output")
	cli.AssertContains(t, stdout, "--rate")
	cli.AssertContains(t, stdout, "--no-header")
	cli.AssertContains(t, stdout, "Examples:")
	cli.AssertContains(t, stdout, "  keyscreen screen db_input.csv db_check.csv")
}

func Test_Invalid_Command_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("size", "--bogus")

	cli.AssertContains(t, stderr, "error: unknown flag: --bogus")
	cli.AssertContains(t, stderr, "Usage: keyscreen size")
	cli.AssertContains(t, stderr, "--items")
}

func Test_Command_Flag_Error_Keeps_Stdout_Empty_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("ref.csv", "Email\na@x.com\n")

	stdout, stderr, exitCode := c.Run("check", "--sizing", "ref.csv", "a@x.com", "--nope")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "Usage: keyscreen check <reference-file> [key...]")
	cli.AssertContains(t, stderr, "Flags:")
}

func Test_Invalid_Config_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".keyscreen.json", `{"hash": "md5"}`)

	stderr := c.MustFail("size", "-n", "10")

	cli.AssertContains(t, stderr, "unknown hasher")
}
