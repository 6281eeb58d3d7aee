package messagetemplate

import (
	"attachment-portal-backend/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildDecisionMsg(t *testing.T) {
	data := models.TemplateData{
		ApplicantName:          "Jane Wanjiru",
		ApplicationID:          "app-1",
		PreferredDepartment:    "State Department for Public Administration",
		PreferredSubdepartment: "ICT",
		StartDate:              "2025-01-06",
		EndDate:                "2025-03-28",
		ReviewerName:           "John Otieno",
	}

	t.Run(`approved`, func(t *testing.T) {
		data.Decision = &models.DecisionTemplateData{
			Approved:     true,
			Headline:     "Congratulations, your application was approved",
			NextSteps:    "Bring your original documents on the first day.",
			ReportingDay: "2025-01-06",
		}
		title, body, err := BuildDecisionMsg(data)
		require.NoError(t, err)
		require.Equal(t, approvedTitle, title)
		require.True(t, strings.Contains(body, "Please report on 2025-01-06"))
		require.True(t, strings.Contains(body, "Jane Wanjiru"))
	})

	t.Run(`rejected`, func(t *testing.T) {
		data.Decision = &models.DecisionTemplateData{
			Headline:  "Your application was not successful",
			NextSteps: "You may apply again for a later period.",
		}
		title, body, err := BuildDecisionMsg(data)
		require.NoError(t, err)
		require.Equal(t, rejectedTitle, title)
		require.False(t, strings.Contains(body, "Please report on"))
	})

	t.Run(`decision missing`, func(t *testing.T) {
		data.Decision = nil
		_, _, err := BuildDecisionMsg(data)
		require.Error(t, err)
	})
}

func TestBuildSubmittedMsgEscapes(t *testing.T) {
	_, body, err := BuildSubmittedMsg(models.TemplateData{ApplicantName: "<script>x</script>"})
	require.NoError(t, err)
	require.False(t, strings.Contains(body, "<script>"))
}

func TestBuildResetPasswordMsg(t *testing.T) {
	title, body, err := BuildResetPasswordMsg(models.ResetPasswordTemplateData{
		UserName:    "Jane",
		Code:        "abc123",
		ResetLink:   "http://localhost:3000/reset-password?code=abc123",
		ExpireInMin: 60,
	})
	require.NoError(t, err)
	require.Equal(t, resetPasswordTitle, title)
	require.True(t, strings.Contains(body, "abc123"))
	require.True(t, strings.Contains(body, "60 minutes"))
}
