package media

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ProbeDurationFunc 測試時會被覆蓋
var ProbeDurationFunc = ProbeDuration

// ProbeDuration 用 ffprobe 取得媒體長度（秒）
func ProbeDuration(inputPath string) (float64, error) {
	cmdArgs := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	}
	cmd := exec.Command("ffprobe", cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe 執行失敗: %v, output: %s", err, string(output))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("解析 ffprobe 輸出失敗: %v", err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("無法取得媒體長度: %s", inputPath)
	}
	return duration, nil
}
