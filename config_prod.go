//go:build !local

package messagecleanup

// デフォルトのビルドではCloud Logging / CloudWatch向けにJSONで出力する
func init() {
	defaultLogFormat = "json"
}
