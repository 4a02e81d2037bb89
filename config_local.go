//go:build local

package messagecleanup

import "fmt"

// ローカル実行時（go run --tags=local ./cmd/local）にのみビルドされる
func init() {
	defaultLogFormat = "text"

	fmt.Println("========================================")
	fmt.Println("    RUNNING IN LOCAL MODE")
	fmt.Println("    Log format: text")
	fmt.Println("========================================")
}
