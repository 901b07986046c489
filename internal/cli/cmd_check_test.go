package cli_test

import (
	"testing"

	"github.com/calvinalkan/keyscreen/internal/cli"
)

func Test_Check_Classifies_Args_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("ref.csv", referenceCSV)

	stdout := c.MustRun("check", "-p", "0.01", "ref.csv", "a@x.com", "zzz-unique-unlikely@x.com")

	want := "a@x.com\tProbably in the DB\nzzz-unique-unlikely@x.com\tNot in the DB"
	if got := stdout; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_Check_Reads_Stdin_When_No_Keys(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("ref.csv", referenceCSV)

	stdout, stderr, exitCode := c.RunWithInput("b@x.com\r\n\r\nc@x.com\n", "check", "ref.csv")

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d (stderr=%q)", got, want, stderr)
	}

	want := "b@x.com\tProbably in the DB\nc@x.com\tProbably in the DB\n"
	if got := stdout; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_Check_Verbose_Logs_Filter_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("ref.csv", referenceCSV)

	_, stderr, exitCode := c.Run("--verbose", "check", "-p", "0.01", "ref.csv", "a@x.com")

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "info: filter: 3 keys, m=29 bits, k=6")
}

func Test_Check_Fails_When_Reference_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("check")
	cli.AssertContains(t, stderr, "reference file is required")

	stderr = c.MustFail("check", "missing.csv", "a@x.com")
	cli.AssertContains(t, stderr, "cannot read input")
}
