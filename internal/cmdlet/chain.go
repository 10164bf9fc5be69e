package cmdlet

import (
	"github.com/cockroachdb/errors"
)

// ChainCmds statically links command values into a parent-to-child chain
// without argv-based dispatch, for programmatic composition: the first
// command becomes the root, each following one is attached under the
// previous. Every node is initialized with argv, which therefore must not
// contain sub-command tokens. Returns the root, on which Start is invoked.
func ChainCmds(cmds []any, argv []string, opts ...Option) (*Node, error) {
	if len(cmds) == 0 {
		return nil, errors.New("no commands to chain passed in")
	}

	var root, cur *Node
	for _, cmd := range cmds {
		node := New(cmd, opts...)
		if root == nil {
			root, cur = node, node
		} else {
			node.Attach(cur)
			cur.child = node
			cur = node
		}
		if err := node.Initialize(argv); err != nil {
			return nil, err
		}
	}
	return root, nil
}
