package credentials

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Source is one layer of configuration: a flat name/value map.
type Source map[string]string

// EnvSource snapshots the current process environment.
func EnvSource() Source {
	env := os.Environ()
	src := make(Source, len(env))
	for _, kv := range env {
		if i := strings.IndexByte(kv, '='); i > 0 {
			src[kv[:i]] = kv[i+1:]
		}
	}
	return src
}

// FileSource reads a dotenv override file. A missing file yields an empty
// source; override files are optional by design.
func FileSource(path string) (Source, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Source{}, nil
		}
		return nil, err
	}
	return Source(values), nil
}

// Chain is an ordered list of sources. Earlier sources win; resolution stops
// at the first non-empty value per variable.
type Chain []Source

// DefaultChain builds the standard chain: process environment, then .env and
// .env.local relative to dir. Unreadable override files are skipped; they
// only ever widen the search, never abort it.
func DefaultChain(dir string) Chain {
	chain := Chain{EnvSource()}
	for _, name := range []string{".env", ".env.local"} {
		src, err := FileSource(dir + string(os.PathSeparator) + name)
		if err != nil {
			continue
		}
		chain = append(chain, src)
	}
	return chain
}

// Lookup returns the first non-empty value of name across the chain.
func (c Chain) Lookup(name string) string {
	for _, src := range c {
		if v := src[name]; v != "" {
			return v
		}
	}
	return ""
}

// LookupAny tries each name in order within each source, preferring an
// earlier source over an earlier name. A provider-agnostic alias listed
// first therefore beats the provider-specific name within the same source,
// while any environment value still beats any file value.
func (c Chain) LookupAny(names ...string) string {
	for _, src := range c {
		for _, name := range names {
			if v := src[name]; v != "" {
				return v
			}
		}
	}
	return ""
}

// LookupSecret resolves a secret variable. Within each source the plain name
// wins; the encoded variant (name + "_ENCODED", run through Unescape) is
// consulted only when the plain variable is absent there.
func (c Chain) LookupSecret(name string) string {
	encoded := name + encodedSuffix
	for _, src := range c {
		if v := src[name]; v != "" {
			return v
		}
		if v := src[encoded]; v != "" {
			return Unescape(v)
		}
	}
	return ""
}

// boolValue interprets a configuration flag the way the resolver does:
// only a case-insensitive "true" enables it.
func boolValue(v string) bool {
	return strings.EqualFold(v, "true")
}
