package service

import (
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"time"
)

// ScoreAnswers 逐题精确比较答案，缺答按错误计；返回答对题数
func ScoreAnswers(questions []model.Question, answers map[uint]string) int {
	score := 0
	for _, q := range questions {
		if ans, ok := answers[q.ID]; ok && ans == q.CorrectAnswer {
			score++
		}
	}
	return score
}

// CalculateProgress 截断取整的完成百分比；课程没有课时时 ok 为 false，调用方不应更新进度
func CalculateProgress(completed, total int64) (progress int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	if completed > total {
		completed = total
	}
	if completed < 0 {
		completed = 0
	}
	return int(completed * 100 / total), true
}

var QuizBucketLabels = []string{"0-50%", "50-75%", "75-100%"}

// BucketQuizScores 按原始得分分桶：[0,50)、[50,75)、其余
func BucketQuizScores(scores []int) model.QuizHistogram {
	counts := make([]int, len(QuizBucketLabels))
	for _, s := range scores {
		switch {
		case s < 50:
			counts[0]++
		case s < 75:
			counts[1]++
		default:
			counts[2]++
		}
	}
	labels := make([]string, len(QuizBucketLabels))
	copy(labels, QuizBucketLabels)
	return model.QuizHistogram{Labels: labels, Counts: counts}
}

// MonthWindows 以 now 所在月为结尾、最早的月份在前的 n 个自然月
func MonthWindows(now time.Time, n int) []model.MonthlyPoint {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	points := make([]model.MonthlyPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		points = append(points, model.MonthlyPoint{
			Label: m.Format("Jan"),
			Month: int(m.Month()),
			Year:  m.Year(),
		})
	}
	return points
}

// CountByMonth 将选课时间计入月份窗口；matchYear 为 false 时只比较月份数字
func CountByMonth(points []model.MonthlyPoint, times []time.Time, matchYear bool) []model.MonthlyPoint {
	for i := range points {
		for _, t := range times {
			if int(t.Month()) != points[i].Month {
				continue
			}
			if matchYear && t.Year() != points[i].Year {
				continue
			}
			points[i].Count++
		}
	}
	return points
}

// GradePolicy 作业评分的合法闭区间
type GradePolicy struct {
	Min float64
	Max float64
}

func (p GradePolicy) Validate(grade float64) error {
	if grade < p.Min || grade > p.Max {
		return util.NewValidationError("grade", fmt.Sprintf("must be between %g and %g", p.Min, p.Max))
	}
	return nil
}
