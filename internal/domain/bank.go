package domain

// DefaultBank returns the built-in problem set used as a safety net when the
// configured bank is empty at contest start, so a misconfigured bank never
// blocks the launch.
func DefaultBank() []Problem {
	return []Problem{
		{
			ID:         "p1",
			Title:      "Multi-Lingual FizzBuzz",
			Difficulty: DifficultyEasy,
			Description: "Read an integer `n` from standard input. For each integer `i` from 1 to `n` (inclusive), print a value to a new line:\n" +
				"- \"FizzBuzz\" if `i` is divisible by 3 and 5.\n" +
				"- \"Fizz\" if `i` is divisible by 3.\n" +
				"- \"Buzz\" if `i` is divisible by 5.\n" +
				"- The value of `i` itself if none of the above apply.",
			Constraints: []string{"1 <= n <= 10^4"},
			TestCases: []TestCase{
				{ID: "tc1", Input: "3", ExpectedOutput: "1\n2\nFizz"},
				{ID: "tc2", Input: "5", ExpectedOutput: "1\n2\nFizz\n4\nBuzz"},
				{ID: "tc3", Input: "15", ExpectedOutput: "1\n2\nFizz\n4\nBuzz\nFizz\n7\n8\nFizz\nBuzz\n11\nFizz\n13\n14\nFizzBuzz"},
			},
		},
		{
			ID:         "p2",
			Title:      "The Anagram Detector",
			Difficulty: DifficultyEasy,
			Description: "Read two strings `s` and `t` from standard input (each on a new line). Output \"true\" if `t` is an anagram of `s`, and \"false\" otherwise.\n\n" +
				"An anagram is formed by rearranging letters. For example, \"silent\" and \"listen\" are anagrams.",
			Constraints: []string{"1 <= s.length, t.length <= 5000", "Strings contain lowercase English letters."},
			TestCases: []TestCase{
				{ID: "tc1", Input: "anagram\nnagaram", ExpectedOutput: "true"},
				{ID: "tc2", Input: "rat\ncar", ExpectedOutput: "false"},
			},
		},
		{
			ID:          "p3",
			Title:       "Bracket Balance",
			Difficulty:  DifficultyEasy,
			Description: "Read a string containing only parentheses \"()\", \"[]\", and \"{}\" from standard input. Output \"true\" if the brackets are balanced and correctly nested, otherwise output \"false\".",
			Constraints: []string{"1 <= string length <= 10^4"},
			TestCases: []TestCase{
				{ID: "tc1", Input: "()[]{}", ExpectedOutput: "true"},
				{ID: "tc2", Input: "([)]", ExpectedOutput: "false"},
				{ID: "tc3", Input: "{[]}", ExpectedOutput: "true"},
			},
		},
		{
			ID:          "p4",
			Title:       "The Staircase Problem",
			Difficulty:  DifficultyMedium,
			Description: "You are climbing a staircase with `n` steps. Each time you can climb 1 or 2 steps. Read `n` from standard input and output the number of distinct ways to reach the top.",
			Constraints: []string{"1 <= n <= 40"},
			TestCases: []TestCase{
				{ID: "tc1", Input: "2", ExpectedOutput: "2"},
				{ID: "tc2", Input: "3", ExpectedOutput: "3"},
				{ID: "tc3", Input: "10", ExpectedOutput: "89"},
			},
		},
		{
			ID:          "p5",
			Title:       "Maximum Continuous Sum",
			Difficulty:  DifficultyMedium,
			Description: "Read an array of integers from standard input. The first line contains the size of the array `n`. The second line contains `n` space-separated integers. Output the maximum sum of a contiguous subarray.",
			Constraints: []string{"1 <= n <= 10^5", "-10^4 <= value <= 10^4"},
			TestCases: []TestCase{
				{ID: "tc1", Input: "9\n-2 1 -3 4 -1 2 1 -5 4", ExpectedOutput: "6"},
				{ID: "tc2", Input: "5\n5 4 -1 7 8", ExpectedOutput: "23"},
			},
		},
	}
}
