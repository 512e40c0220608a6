package integration_tests

import "fmt"

func fmtTask(format, name string) string {
	return fmt.Sprintf(format, name)
}
