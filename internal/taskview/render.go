package taskview

// Render builds the element tree for items.
// No items yields the container with a single empty-state node. Otherwise the
// container holds the heading followed by one task node per item, in order.
func Render(items []Item) Node {
	root := Node{Kind: KindContainer, Classes: []string{ClassContainer}}

	if len(items) == 0 {
		root.Children = []Node{EmptyState()}
		return root
	}

	root.Children = make([]Node, 0, len(items)+1)
	root.Children = append(root.Children, Node{
		Kind:    KindHeading,
		Text:    HeadingText,
		Classes: []string{ClassHeading},
	})
	for _, it := range items {
		root.Children = append(root.Children, taskNode(it))
	}
	return root
}

// EmptyState returns the placeholder shown when no tasks exist.
func EmptyState() Node {
	return Node{Kind: KindEmpty, Text: EmptyText, Classes: []string{ClassEmpty}}
}

func taskNode(it Item) Node {
	classes := []string{ClassTask}
	if it.Fading {
		classes = append(classes, ClassFadeOut)
	}
	return Node{
		Kind:    KindTask,
		Key:     it.Key,
		Title:   it.Task.Title,
		Content: it.Task.Content,
		Classes: classes,
	}
}
