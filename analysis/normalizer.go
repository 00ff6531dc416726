package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"factcheck/models"
)

const fence = "```"

// Assessment 经过校验的模型结论
type Assessment struct {
	Verdict     models.Verdict
	Score       int
	Explanation string

	// 以下标记用于日志，记录是否触发了容错修正
	VerdictCoerced bool
	ScoreClamped   bool
}

// ExtractJSON 在模型回复中定位 JSON 对象文本。
// 优先取标注为 json 的代码块，其次取第一个括号配平的顶层 {...}。
func ExtractJSON(text string) (string, bool) {
	if span, ok := fencedJSON(text); ok {
		return span, true
	}
	return balancedObject(text)
}

// fencedJSON 查找 ```json ... ``` 代码块，标签不区分大小写
func fencedJSON(text string) (string, bool) {
	rest := text
	for {
		open := strings.Index(rest, fence)
		if open < 0 {
			return "", false
		}
		rest = rest[open+len(fence):]

		label := rest
		body := ""
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			label = rest[:nl]
			body = rest[nl+1:]
		}
		end := strings.Index(body, fence)
		if end < 0 {
			return "", false
		}
		if strings.EqualFold(strings.TrimSpace(label), "json") {
			if content := strings.TrimSpace(body[:end]); content != "" {
				return content, true
			}
		}
		// 跳过整个代码块，继续查找下一个
		rest = body[end+len(fence):]
	}
}

// balancedObject 从第一个 '{' 开始扫描，忽略字符串内的括号，返回配平的对象文本
func balancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// Normalize 将模型原始回复解析为结论、分数和说明。
// 结论不在枚举内时修正为 Uncertain，分数四舍五入后限制在 [0,100]。
// 代码块内容无法解码时（如说明文字里含有 ```），改用括号配平的对象再试一次。
func Normalize(raw string) (Assessment, error) {
	span, ok := ExtractJSON(raw)
	if !ok {
		return Assessment{}, malformed(raw, "no JSON object found in reply", nil)
	}

	fields, err := decodeObject(span)
	if err != nil {
		if fallback, ok := balancedObject(raw); ok && fallback != span {
			if fields, err = decodeObject(fallback); err == nil {
				return assess(raw, fields)
			}
		}
		return Assessment{}, malformed(raw, "reply JSON could not be decoded", err)
	}
	if fields == nil {
		return Assessment{}, malformed(raw, "reply JSON is not an object", nil)
	}
	return assess(raw, fields)
}

func decodeObject(span string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(span)))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func assess(raw string, fields map[string]any) (Assessment, error) {
	verdictText, ok := fields["verdict"].(string)
	if !ok || strings.TrimSpace(verdictText) == "" {
		return Assessment{}, incomplete(raw, "verdict is missing or not a string")
	}
	num, ok := fields["score"].(json.Number)
	if !ok {
		return Assessment{}, incomplete(raw, "score is missing or not a number")
	}
	// 超出 float64 范围时 Float64 返回 ±Inf，交给 ClampScore 截断
	scoreValue, err := num.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Assessment{}, incomplete(raw, "score is not a number")
	}
	explanation, ok := fields["explanation"].(string)
	if !ok || strings.TrimSpace(explanation) == "" {
		return Assessment{}, incomplete(raw, "explanation is missing or not a string")
	}

	out := Assessment{Explanation: strings.TrimSpace(explanation)}
	if v, ok := models.ParseVerdict(verdictText); ok {
		out.Verdict = v
	} else {
		out.Verdict = models.VerdictUncertain
		out.VerdictCoerced = true
	}
	out.Score, out.ScoreClamped = ClampScore(scoreValue)
	return out, nil
}

// ClampScore 四舍五入并限制到 [0,100]，第二个返回值表示是否发生截断
func ClampScore(v float64) (int, bool) {
	r := math.Round(v)
	switch {
	case r < 0:
		return 0, true
	case r > 100:
		return 100, true
	}
	return int(r), false
}
