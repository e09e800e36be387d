package diffview

import "strings"

// Row 对齐后的一行: 旧行或空白, 新行或空白, 以及该位置是否发生变化
type Row struct {
	Old     string `json:"old"`
	New     string `json:"new"`
	Changed bool   `json:"changed"`
}

// Render 对两个完整文件内容做逐行位置配对
// 这是按下标对齐的朴素diff, 不做LCS对齐: 中间的插入或删除
// 会让其后所有行都被标为变化。用于UI预览足够, 已知的显示质量限制
func Render(oldText, newText string) []Row {
	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	n := len(oldLines)
	if len(newLines) > n {
		n = len(newLines)
	}

	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		var oldLine, newLine string
		if i < len(oldLines) {
			oldLine = oldLines[i]
		}
		if i < len(newLines) {
			newLine = newLines[i]
		}
		rows[i] = Row{
			Old:     oldLine,
			New:     newLine,
			Changed: oldLine != newLine,
		}
	}

	return rows
}
