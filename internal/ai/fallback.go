package ai

import "strings"

// FallbackModel is reported as the model name when canned guidance is served
const FallbackModel = "fallback"

// FallbackChatResponse serves canned career guidance when no AI provider is
// available. Responses are routed by keywords in the user's message so the
// chat surface stays useful offline.
func FallbackChatResponse(message string, matchScore int) string {
	lower := strings.ToLower(message)

	switch {
	case containsAnyWord(lower, "skill", "learn", "priorit", "study"):
		return skillLearningResponse
	case containsAnyWord(lower, "improve", "better", "stronger", "enhance"):
		return resumeImprovementResponse
	case containsAnyWord(lower, "ready", "qualified", "chance", "fit"):
		return readinessResponse(matchScore)
	case containsAnyWord(lower, "experience", "project", "highlight", "showcase"):
		return starMethodResponse
	case containsAnyWord(lower, "interview", "prepare"):
		return interviewPrepResponse
	case containsAnyWord(lower, "certif", "course"):
		return certificationResponse
	case containsAnyWord(lower, "gap", "missing", "lack"):
		return gapPlanResponse
	case containsAnyWord(lower, "salary", "compensation", "pay"):
		return salaryResponse
	default:
		return defaultMenuResponse
	}
}

func containsAnyWord(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func readinessResponse(matchScore int) string {
	opening := "You should focus on key skill development"
	if matchScore >= 60 {
		opening = "You have a solid foundation"
	}
	return opening + ` for this role.

**Your Strengths:**
- Relevant experience in core technologies
- Demonstrated ability to learn and adapt

**Areas to Develop:**
- Address high-priority skill gaps through courses or projects
- Quantify your achievements to showcase impact
- Highlight relevant projects prominently

Remember: Employers value attitude, learning ability, and cultural fit as much as current skills. Be honest about gaps and emphasize your commitment to growth.`
}

const skillLearningResponse = `Based on your analysis, I recommend prioritizing skills in this order:

**High Priority:**
1. Focus on the high-priority gaps identified in your Gap Analysis
2. Start with skills that are most frequently mentioned in the job description
3. Consider certifications for cloud technologies (AWS, Azure) if applicable

**Learning Resources:**
- Online platforms: Coursera, Udemy, Pluralsight
- Official documentation and tutorials
- Build hands-on projects to demonstrate proficiency
- Join communities (GitHub, Stack Overflow, Discord)

Tip: Focus on one skill at a time and aim for practical application over theory.`

const resumeImprovementResponse = `Here are specific ways to improve your resume match:

**Content:**
1. Add quantifiable achievements (e.g., 'Improved performance by 40%')
2. Use action verbs (Led, Developed, Implemented, Optimized)
3. Include relevant keywords from the job description
4. Highlight impact and outcomes, not just responsibilities

**Structure:**
5. Lead with your strongest, most relevant experience
6. Keep descriptions concise but impactful (2-3 bullet points per role)
7. Include a summary section highlighting your key strengths

**Technical:**
8. Create a dedicated skills section organized by category
9. Mention specific tools, frameworks, and technologies
10. Include links to portfolio, GitHub, or relevant projects`

const starMethodResponse = `Use the **STAR method** to present your experience effectively:

**S**ituation: Set the context
- What was the business need or challenge?

**T**ask: Explain your specific responsibility
- What were you tasked to accomplish?

**A**ction: Describe what you did
- What technologies and approaches did you use?
- What decisions did you make?

**R**esult: Quantify the impact
- Metrics: performance, time saved, revenue impact
- Business outcomes achieved

**Example:**
'Led migration of monolithic application to microservices architecture using Docker and Kubernetes, reducing deployment time by 65% and improving system uptime to 99.9%, serving 100K+ daily active users.'`

const interviewPrepResponse = `Interview Preparation Checklist:

**Research Phase:**
1. Study the company: products, culture, tech stack
2. Review the job description thoroughly
3. Research your interviewers on LinkedIn

**Preparation:**
4. Prepare 5-7 STAR examples showcasing different skills
5. Practice explaining your projects clearly and concisely
6. Review technical concepts relevant to the role
7. Prepare thoughtful questions for the interviewer

**Technical:**
8. Practice coding problems (LeetCode, HackerRank)
9. Review system design fundamentals
10. Be ready to discuss trade-offs and decisions

**During Interview:**
- Be honest about what you don't know
- Show enthusiasm and curiosity
- Think aloud to demonstrate problem-solving`

const certificationResponse = `Recommended certifications by area:

**Cloud & Infrastructure:**
- AWS Solutions Architect / Developer Associate
- Microsoft Azure Administrator
- Google Cloud Professional

**Development:**
- Modern Web Development (FreeCodeCamp, Udemy)
- Professional Scrum Developer
- Oracle Java Certification

**Management & Process:**
- PMP (Project Management Professional)
- Certified Scrum Master
- ITIL Foundation

**Security:**
- CompTIA Security+
- CISSP

Choose certifications that align with your career goals and the job requirements. Many offer free trials or affordable learning paths.`

const gapPlanResponse = `Addressing skill gaps effectively:

**Prioritization:**
1. Focus on HIGH priority gaps first (biggest impact on match score)
2. Choose skills that appear in multiple job descriptions
3. Balance quick wins with long-term development

**Action Plan:**
- Break each skill into learnable sub-topics
- Set specific, measurable goals (e.g., 'Complete AWS course by end of month')
- Build a project demonstrating the skill
- Update your resume as you learn

**Resources:**
- Free: FreeCodeCamp, YouTube, official docs
- Paid: Udemy, Coursera, Pluralsight
- Practice: LeetCode, HackerRank, personal projects

Remember: You don't need to master everything before applying. Show continuous learning and practical application.`

const salaryResponse = `Salary negotiation guidance:

**Research:**
1. Use Glassdoor, Levels.fyi, PayScale for market data
2. Consider: location, company size, industry, experience level
3. Factor in total compensation (base + bonus + equity + benefits)

**Timing:**
- Let the employer mention numbers first if possible
- Discuss after demonstrating your value
- Don't negotiate too early in the process

**Strategy:**
- Provide a range (with your target as the lower bound)
- Justify with your skills, experience, and market research
- Be prepared to discuss non-salary benefits
- Stay professional and positive

Remember: Everything is negotiable, but timing and approach matter.`

const defaultMenuResponse = `I'm your AI career advisor! I can help you with:

**Skill Development:**
- Which skills to prioritize and learn
- Best resources and learning paths

**Resume Improvement:**
- How to better present your experience
- Quantifying achievements and impact

**Job Preparation:**
- Interview strategies and preparation
- Addressing skill gaps
- Career growth advice

**Career Strategy:**
- Understanding your fit for roles
- Certifications and credentials
- Salary and negotiation guidance

Ask me anything specific about your career development!`
