package commander

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"summarizer/internal/data"
	"summarizer/internal/experiment"
	"summarizer/internal/jobs"
	"summarizer/internal/persistence"
	"summarizer/internal/training"
)

type Commander struct {
	configFile string
	dataFile   string
	pairs      []data.Pair
	lastJob    *jobs.Job
	jobManager *jobs.Manager

	green  func(a ...any) string
	red    func(a ...any) string
	yellow func(a ...any) string
	cyan   func(a ...any) string
}

func NewCommander(configFile string) *Commander {
	return &Commander{
		configFile: configFile,
		jobManager: jobs.NewManager(),
		green:      color.New(color.FgGreen).SprintFunc(),
		red:        color.New(color.FgRed).SprintFunc(),
		yellow:     color.New(color.FgYellow).SprintFunc(),
		cyan:       color.New(color.FgCyan).SprintFunc(),
	}
}

func (c *Commander) Start() {
	c.printWelcome()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(c.yellow("\nsum> "))
		if !scanner.Scan() {
			if scanner.Err() != nil {
				fmt.Printf("\n%s Scanner error: %v\n", c.red("✗"), scanner.Err())
			}
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		command := strings.ToLower(parts[0])
		args := parts[1:]

		switch command {
		case "help":
			c.printHelp()
		case "load":
			c.handleLoad(args)
		case "stats":
			c.handleStats()
		case "train":
			c.handleTrain(args)
		case "jobs":
			c.handleJobs()
		case "save":
			c.handleSave(args)
		case "quit", "exit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("%s Unknown command: %s (try 'help')\n", c.red("✗"), command)
		}
	}
}

func (c *Commander) printWelcome() {
	fmt.Println(c.cyan("Summarization trainer. Type 'help' for commands."))
}

func (c *Commander) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  load <file.csv>   Load (text, summary) pairs")
	fmt.Println("  stats             Show loaded pair statistics")
	fmt.Println("  train [epochs]    Train on the loaded pairs (background job)")
	fmt.Println("  jobs              List background jobs")
	fmt.Println("  save <file>       Save the last completed run as a bundle")
	fmt.Println("  quit              Exit")
}

func (c *Commander) handleLoad(args []string) {
	if len(args) < 1 {
		fmt.Printf("%s Usage: load <file.csv>\n", c.red("✗"))
		return
	}

	pairs, err := data.LoadPairs(args[0])
	if err != nil {
		fmt.Printf("%s Failed to load pairs: %v\n", c.red("✗"), err)
		return
	}

	c.pairs = pairs
	c.dataFile = args[0]
	fmt.Printf("%s Loaded %d pairs from %s\n", c.green("✓"), len(pairs), args[0])
}

func (c *Commander) handleStats() {
	if c.pairs == nil {
		fmt.Printf("%s No pairs loaded (use 'load')\n", c.red("✗"))
		return
	}

	stats := data.GetPairStats(c.pairs)
	fmt.Printf("Pairs: %d\n", stats["pairs"])
	fmt.Printf("Text words: min %d, max %d, mean %.1f\n",
		stats["min_text_words"], stats["max_text_words"], stats["mean_text_words"])
}

func (c *Commander) handleTrain(args []string) {
	if c.dataFile == "" {
		fmt.Printf("%s No pairs loaded (use 'load')\n", c.red("✗"))
		return
	}

	runner := experiment.NewRunner(c.configFile)
	if len(args) > 0 {
		epochs, err := strconv.Atoi(args[0])
		if err != nil || epochs <= 0 {
			fmt.Printf("%s Invalid epoch count: %s\n", c.red("✗"), args[0])
			return
		}
		runner.Config.Experiment.Training.Epochs = epochs
	}

	job := c.jobManager.CreateJob("training", fmt.Sprintf("train on %s", c.dataFile))
	runner.Reporter = &jobReporter{job: job}

	// The goroutine publishes its result only through the job's
	// mutex-guarded accessors; the shell reads it back the same way.
	dataFile := c.dataFile
	go func() {
		job.SetStatus(jobs.JobRunning)
		result, err := runner.Run(dataFile)
		if err != nil {
			job.SetError(err)
			return
		}
		job.SetResult(result)
		job.SetProgress(1)
		job.SetStatus(jobs.JobCompleted)
	}()

	c.lastJob = job
	fmt.Printf("%s Started training job %s\n", c.green("✓"), job.ID)
}

func (c *Commander) handleJobs() {
	allJobs := c.jobManager.ListJobs()
	if len(allJobs) == 0 {
		fmt.Println("No jobs")
		return
	}

	for _, job := range allJobs {
		status := string(job.GetStatus())
		switch job.GetStatus() {
		case jobs.JobCompleted:
			status = c.green(status)
		case jobs.JobFailed:
			status = c.red(status)
		case jobs.JobRunning:
			status = c.cyan(status)
		}
		fmt.Printf("%s  %-10s %s  %.0f%%  %s\n",
			job.ID, job.Type, status, job.GetProgress()*100, job.Description)
		for _, line := range job.GetLogs() {
			fmt.Printf("    %s\n", line)
		}
	}
}

func (c *Commander) handleSave(args []string) {
	if len(args) < 1 {
		fmt.Printf("%s Usage: save <file>\n", c.red("✗"))
		return
	}
	if c.lastJob == nil || c.lastJob.GetStatus() != jobs.JobCompleted {
		fmt.Printf("%s No completed run to save\n", c.red("✗"))
		return
	}

	result, ok := c.lastJob.GetResult().(*experiment.RunResult)
	if !ok {
		fmt.Printf("%s No completed run to save\n", c.red("✗"))
		return
	}
	bundle := persistence.NewRunBundle(result.EpochLosses)
	bundle.Metadata.Dataset = result.Dataset
	bundle.Metadata.Device = result.Device
	bundle.Metadata.TrainingTime = result.TrainingTime
	bundle.Metadata.PipelineTimesMs = result.PipelineTimesMs
	if result.Scores != nil {
		bundle.Metadata.Precision = result.Scores.Precision
		bundle.Metadata.Recall = result.Scores.Recall
		bundle.Metadata.F1 = result.Scores.F1
	}

	if err := bundle.Save(args[0]); err != nil {
		fmt.Printf("%s Failed to save bundle: %v\n", c.red("✗"), err)
		return
	}
	fmt.Printf("%s Run saved to %s\n", c.green("✓"), args[0])
}

// jobReporter adapts training progress into job state so the shell can
// poll long runs.
type jobReporter struct {
	job *jobs.Job
}

func (r *jobReporter) Progress(p training.Progress) {
	done := float64(p.Epoch-1) + float64(p.Batch)/float64(p.Batches)
	r.job.SetProgress(done / float64(p.Epochs))
}

func (r *jobReporter) EpochDone(s training.EpochSummary) {
	r.job.AddLog(fmt.Sprintf("epoch %d/%d mean loss %.4f (%.2f ms/batch)",
		s.Epoch, s.Epochs, s.MeanLoss, s.MeanTimeMs))
}

func (r *jobReporter) Aborted(err error) {
	r.job.AddLog(fmt.Sprintf("training terminated: %T: %v", err, err))
}
