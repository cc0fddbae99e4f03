package invoice

import (
	"github.com/bwmarrin/snowflake"
)

// Numberer gera números de fatura únicos entre instâncias (um node por instância)
type Numberer struct {
	node *snowflake.Node
}

func NewNumberer(node int64) (*Numberer, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &Numberer{node: n}, nil
}

func (n *Numberer) Next() string {
	return "INV-" + n.node.Generate().String()
}
