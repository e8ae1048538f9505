package cli

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
)

// voteDirection collects --up and --down so that conflicting or missing
// directions are reported as one InvalidArguments error
type voteDirection struct {
	set []string
}

// directionFlag is the pflag.Value behind one of the direction switches
type directionFlag struct {
	dir   *voteDirection
	name  string
	value bool
}

func (f *directionFlag) String() string {
	return strconv.FormatBool(f.value)
}

func (f *directionFlag) Set(value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	f.value = b
	if b {
		f.dir.set = append(f.dir.set, f.name)
	}
	return nil
}

func (f *directionFlag) Type() string {
	return "bool"
}

var _ pflag.Value = &directionFlag{}

// register adds --up and --down to fs
func (d *voteDirection) register(fs *pflag.FlagSet) {
	for _, s := range []struct{ name, usage string }{
		{"up", "Upvote the code block"},
		{"down", "Downvote the code block"},
	} {
		fs.Var(&directionFlag{dir: d, name: s.name}, s.name, s.usage)
		fs.Lookup(s.name).NoOptDefVal = "true"
	}
}

// Succeeded reports whether the vote is an upvote
func (d *voteDirection) Succeeded() (bool, error) {
	switch seen := lo.Uniq(d.set); {
	case len(seen) == 0:
		return false, invalidArguments("one of --up or --down is required")
	case len(seen) > 1:
		return false, invalidArguments("--up and --down are mutually exclusive")
	}
	return d.set[0] == "up", nil
}
