//go:build !linux

package term

func flushInput(int) error {
	return nil
}
