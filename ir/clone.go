package ir

// Clone returns a deep copy of the document. Pipeline stages that rewrite
// documents operate on a clone and leave the input untouched.
func (d *Document) Clone() *Document {
	out := &Document{
		Title:    d.Title,
		Sections: make([]*Section, len(d.Sections)),
		Metadata: d.Metadata,
	}
	out.Metadata.Tags = append([]string(nil), d.Metadata.Tags...)
	if d.Metadata.Custom != nil {
		out.Metadata.Custom = make(map[string]string, len(d.Metadata.Custom))
		for k, v := range d.Metadata.Custom {
			out.Metadata.Custom[k] = v
		}
	}
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	out := &Section{
		ID:     s.ID,
		Title:  s.Title,
		Order:  s.Order,
		Blocks: make([]*Block, len(s.Blocks)),
		Notes:  make([]Footnote, len(s.Notes)),
	}
	for i, b := range s.Blocks {
		out.Blocks[i] = b.Clone()
	}
	for i, n := range s.Notes {
		out.Notes[i] = n
		out.Notes[i].Backlinks = append([]string(nil), n.Backlinks...)
	}
	return out
}

// Clone returns a deep copy of the block.
func (b *Block) Clone() *Block {
	out := &Block{
		ID:      b.ID,
		Type:    b.Type,
		Order:   b.Order,
		Content: cloneContent(b.Content),
	}
	if b.Marks != nil {
		out.Marks = make([]Mark, len(b.Marks))
		for i, m := range b.Marks {
			out.Marks[i] = m
			if m.Attrs != nil {
				out.Marks[i].Attrs = make(map[string]string, len(m.Attrs))
				for k, v := range m.Attrs {
					out.Marks[i].Attrs[k] = v
				}
			}
		}
	}
	if b.Attrs != nil {
		out.Attrs = make(map[string]string, len(b.Attrs))
		for k, v := range b.Attrs {
			out.Attrs[k] = v
		}
	}
	return out
}

func cloneContent(c BlockContent) BlockContent {
	switch c := c.(type) {
	case ListContent:
		return *cloneList(&c)
	case TableContent:
		out := c
		out.Headers = append([]string(nil), c.Headers...)
		out.Rows = make([][]string, len(c.Rows))
		for i, row := range c.Rows {
			out.Rows[i] = append([]string(nil), row...)
		}
		return out
	case RawContent:
		return RawContent{Data: append([]byte(nil), c.Data...)}
	default:
		// Remaining payloads are flat value types.
		return c
	}
}

func cloneList(c *ListContent) *ListContent {
	out := &ListContent{Type: c.Type, Items: make([]ListItem, len(c.Items))}
	for i, item := range c.Items {
		out.Items[i] = ListItem{Content: item.Content}
		if item.Children != nil {
			out.Items[i].Children = cloneList(item.Children)
		}
	}
	return out
}
