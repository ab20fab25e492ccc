package common

// Virtual key codes for the showroom's keyboard shortcuts. Values match GLFW
// key codes, which use ASCII for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW = 87 // orbit up
	KeyA = 65 // orbit left
	KeyS = 83 // orbit down
	KeyD = 68 // orbit right

	KeyEsc   = 256 // deselect
	KeySpace = 32  // toggle outline animation

	Key1 = 49 // outline: normal output
	Key2 = 50 // outline: mask debug output
	Key3 = 51 // outline: blur debug output
)
