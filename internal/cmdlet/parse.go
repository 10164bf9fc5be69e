package cmdlet

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
)

// parseResult is the outcome of splitting one node's argv: the node's own
// option values as an override tree, the surviving positional args, and
// whether help was requested.
type parseResult struct {
	overrides Overrides
	rest      []string
	help      bool
}

// flagRegistration groups the pflag registration of one logical option:
// its long name plus an optional one-letter shorthand.
type flagRegistration struct {
	long  string
	short string
}

// flagTokens is one toggle-flag definition with every token mapped to it.
type flagTokens struct {
	tokens []string
	def    *FlagDef
	reg    flagRegistration
}

// aliasTokens is one alias target with every token mapped to it.
type aliasTokens struct {
	tokens []string
	path   string
	reg    flagRegistration
}

func registration(tokens []string) flagRegistration {
	var reg flagRegistration
	for _, tok := range tokens {
		if len(tok) == 1 && reg.short == "" {
			reg.short = tok
		} else if len(reg.long) < len(tok) {
			reg.long = tok
		}
	}
	if reg.long == "" {
		reg.long = reg.short
		reg.short = ""
	}
	return reg
}

// parseCommandLine delegates argv splitting to pflag: boolean toggle flags
// from the node's flag map, value-carrying aliases, one --<class>.<prop>
// option per schema field, and the built-in --help. Interspersed parsing is
// off, so the first positional token ends this node's options and starts
// the (potential) sub-command tail.
func (n *Node) parseCommandLine(argv []string) (*parseResult, error) {
	fs := pflag.NewFlagSet(n.Name, pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	help := fs.BoolP("help", "h", false, "show this help and exit")

	// Toggle flags. Short and long tokens of one definition collapse into
	// a single pflag registration.
	flagRegs := n.flagRegistrations()
	for i := range flagRegs {
		flagRegs[i].reg = registration(flagRegs[i].tokens)
		fs.BoolP(flagRegs[i].reg.long, flagRegs[i].reg.short, false, firstLine(flagRegs[i].def.Help))
	}

	// Aliases. Multiple tokens naming the same property collapse too.
	aliasRegs := n.aliasRegistrations()
	for i := range aliasRegs {
		aliasRegs[i].reg = registration(aliasRegs[i].tokens)
		fs.StringP(aliasRegs[i].reg.long, aliasRegs[i].reg.short, "",
			"equivalent to --"+aliasRegs[i].path+"=<value>")
	}

	// One explicit option per schema field.
	for _, field := range n.Schema.Fields() {
		if fs.Lookup(field.Name) != nil {
			continue
		}
		fs.String(field.Name, "", firstLine(field.Help))
	}

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return &parseResult{help: true}, nil
		}
		return nil, errors.Wrapf(err, "parsing %s arguments", n.Name)
	}

	res := &parseResult{
		overrides: make(Overrides),
		rest:      fs.Args(),
		help:      *help,
	}

	// Flag overrides first, alias values next, explicit options last:
	// the more specific spelling wins.
	for _, fr := range flagRegs {
		if fs.Changed(fr.reg.long) {
			for key, val := range fr.def.Overrides {
				res.overrides[strings.ToLower(key)] = val
			}
		}
	}
	for _, ar := range aliasRegs {
		if fs.Changed(ar.reg.long) {
			val, _ := fs.GetString(ar.reg.long)
			res.overrides[strings.ToLower(ar.path)] = val
		}
	}
	for _, field := range n.Schema.Fields() {
		if fs.Changed(field.Name) {
			val, _ := fs.GetString(field.Name)
			res.overrides[field.Name] = val
		}
	}

	return res, nil
}

// FlagUsages renders the node's option help the way pflag formats it.
func (n *Node) FlagUsages() string {
	fs := pflag.NewFlagSet(n.Name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.BoolP("help", "h", false, "show this help and exit")
	for _, def := range n.flagRegistrations() {
		reg := registration(def.tokens)
		fs.BoolP(reg.long, reg.short, false, firstLine(def.def.Help))
	}
	for _, al := range n.aliasRegistrations() {
		reg := registration(al.tokens)
		fs.StringP(reg.long, reg.short, "", "equivalent to --"+al.path+"=<value>")
	}
	return fs.FlagUsages()
}
