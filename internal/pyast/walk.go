package pyast

// Annotate sets the Parent of every node below root to its immediate
// structural parent. The root's Parent is set to nil.
func Annotate(root *Node) {
	if root == nil {
		return
	}
	root.Parent = nil
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range n.Children {
			c.Parent = n
			stack = append(stack, c)
		}
	}
}

// EnclosingFunction returns the nearest function definition at or above n,
// or nil when n is not inside a function. Lambdas do not count.
func EnclosingFunction(n *Node) *Node {
	for ; n != nil; n = n.Parent {
		if n.Kind == FunctionDef {
			return n
		}
	}
	return nil
}

// Walk calls fn for every node of the tree rooted at root, breadth first,
// in the same order as CPython's ast.walk.
func Walk(root *Node, fn func(*Node)) {
	if root == nil {
		return
	}
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		queue = append(queue, n.Children...)
		fn(n)
	}
}

// Any reports whether pred holds for some node of the tree rooted at root,
// root included.
func Any(root *Node, pred func(*Node) bool) bool {
	if root == nil {
		return false
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pred(n) {
			return true
		}
		stack = append(stack, n.Children...)
	}
	return false
}
