package cli_test

import (
	"testing"

	"github.com/calvinalkan/keyscreen/internal/cli"
)

func Test_Size_Prints_Dimensions_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("size", "-n", "1000")

	cli.AssertContains(t, stdout, "items=1000\n")
	cli.AssertContains(t, stdout, "target_false_positive_rate=1e-07\n")
	cli.AssertContains(t, stdout, "sizing=ceil\n")
	cli.AssertContains(t, stdout, "bits=33548\n")
	cli.AssertContains(t, stdout, "hashes=23\n")
	cli.AssertContains(t, stdout, "bytes=4194\n")
}

func Test_Size_Truncate_Warns_When_Undersized(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("size", "-n", "3", "--rate", "0.01", "--sizing", "truncate")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, "bits=28\n")
	cli.AssertContains(t, stdout, "hashes=6\n")
	cli.AssertContains(t, stderr, "warning: truncated sizing misses target rate")
	cli.AssertContains(t, stderr, "expected false positive rate is 0.01137")
	cli.AssertContains(t, stderr, "--sizing=ceil or a lower --rate sizes closer to the target")
	cli.AssertNotContains(t, stderr, "textbook")
}

func Test_Size_Ceil_Does_Not_Warn_When_Marginally_Above_Target(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	// k is floored, so 10 keys at 0.1 land at ~0.1004.
	stdout, stderr, exitCode := c.Run("size", "-n", "10", "-p", "0.1")

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d (stderr=%q)", got, want, stderr)
	}

	if got, want := stderr, ""; got != want {
		t.Errorf("stderr=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stdout, "sizing=ceil\n")
	cli.AssertContains(t, stdout, "expected_false_positive_rate=0.1004\n")
}

func Test_Size_Fails_When_Items_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("size")

	cli.AssertContains(t, stderr, "--items must be at least 1")
}
