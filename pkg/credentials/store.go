// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package credentials

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store keeps access tokens keyed by workspace url. A token saved for
// "https://host" also serves "https://host/any/path".
type Store struct {
	fp     string
	tokens map[string]string
}

func NewStore() (*Store, error) {
	fp, err := credsLocation()
	if err != nil {
		return nil, err
	}
	s := &Store{
		fp:     fp,
		tokens: map[string]string{},
	}
	b, err := os.ReadFile(fp)
	if err == nil {
		if err := yaml.Unmarshal(b, &s.tokens); err != nil {
			return nil, fmt.Errorf("error parsing credentials file %q: %w", fp, err)
		}
		if s.tokens == nil {
			s.tokens = map[string]string{}
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

func normalize(u url.URL) string {
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u.String()
}

func (s *Store) Path() string {
	return s.fp
}

func (s *Store) Len() int {
	return len(s.tokens)
}

func (s *Store) Set(u url.URL, token string) {
	s.tokens[normalize(u)] = token
}

// Delete removes the token saved for u, reporting whether there was one
func (s *Store) Delete(u url.URL) bool {
	k := normalize(u)
	if _, ok := s.tokens[k]; !ok {
		return false
	}
	delete(s.tokens, k)
	return true
}

// URIs returns saved urls in sorted order
func (s *Store) URIs() []url.URL {
	keys := make([]string, 0, len(s.tokens))
	for k := range s.tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	res := make([]url.URL, 0, len(keys))
	for _, k := range keys {
		u, err := url.Parse(k)
		if err != nil {
			continue
		}
		res = append(res, *u)
	}
	return res
}

func isPrefix(saved, target *url.URL) bool {
	if saved.Scheme != target.Scheme || saved.Host != target.Host {
		return false
	}
	p := strings.TrimSuffix(target.Path, "/")
	return saved.Path == "" || p == saved.Path || strings.HasPrefix(p, saved.Path+"/")
}

// GetTokenMatching returns the saved url that is the longest prefix of u and
// its token. It returns nil when nothing matches.
func (s *Store) GetTokenMatching(u url.URL) (*url.URL, string) {
	var (
		best  *url.URL
		token string
	)
	for k, tok := range s.tokens {
		saved, err := url.Parse(k)
		if err != nil || !isPrefix(saved, &u) {
			continue
		}
		if best == nil || len(saved.Path) > len(best.Path) {
			best = saved
			token = tok
		}
	}
	return best, token
}

func (s *Store) Flush() error {
	if err := os.MkdirAll(filepath.Dir(s.fp), 0755); err != nil {
		return err
	}
	b, err := yaml.Marshal(s.tokens)
	if err != nil {
		return err
	}
	return os.WriteFile(s.fp, b, 0600)
}
