package vault

import "sort"

// trie is a rune-keyed prefix tree backing name completion. It keeps
// lookups cheap for the REPL's prefix listing and suggestions without
// rescanning the whole store on every keystroke-sized query.
type trie struct {
	children map[rune]*trie
	terminal bool
}

func newTrie() *trie {
	return &trie{children: make(map[rune]*trie)}
}

func (t *trie) insert(word string) {
	if word == "" {
		return
	}
	node := t
	for _, r := range word {
		child, ok := node.children[r]
		if !ok {
			child = newTrie()
			node.children[r] = child
		}
		node = child
	}
	node.terminal = true
}

// remove unmarks word and prunes nodes that no longer lead anywhere.
// Returns false if the word was not present.
func (t *trie) remove(word string) bool {
	if word == "" {
		return false
	}

	path := make([]*trie, 0, len(word)+1)
	runes := []rune(word)
	node := t
	path = append(path, node)
	for _, r := range runes {
		child, ok := node.children[r]
		if !ok {
			return false
		}
		node = child
		path = append(path, node)
	}
	if !node.terminal {
		return false
	}
	node.terminal = false

	for i := len(runes) - 1; i >= 0; i-- {
		child := path[i+1]
		if child.terminal || len(child.children) > 0 {
			break
		}
		delete(path[i].children, runes[i])
	}
	return true
}

func (t *trie) contains(word string) bool {
	node := t.walk(word)
	return node != nil && node.terminal
}

// completions returns every stored word starting with prefix, sorted.
func (t *trie) completions(prefix string) []string {
	node := t.walk(prefix)
	if node == nil {
		return nil
	}

	var out []string
	node.collect(prefix, &out)
	sort.Strings(out)
	return out
}

func (t *trie) walk(prefix string) *trie {
	node := t
	for _, r := range prefix {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

func (t *trie) collect(acc string, out *[]string) {
	if t.terminal {
		*out = append(*out, acc)
	}
	for r, child := range t.children {
		child.collect(acc+string(r), out)
	}
}
