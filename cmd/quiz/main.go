package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dermamatch/internal/domain"
	"dermamatch/internal/questionnaire"
	"dermamatch/internal/repository"
	"dermamatch/internal/service"
)

// Runner interactivo del cuestionario por stdin. Si DATABASE_URL esta
// seteada, ademas trae el shortlist de productos para el resultado.
func main() {
	locale := flag.String("locale", "en", "question locale (en|es)")
	flag.Parse()

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	logger := zap.NewExample()
	defer logger.Sync()

	definition, err := questionnaire.LoadDefault()
	if err != nil {
		log.Fatalf("load questionnaire: %v", err)
	}

	quizSvc := service.NewQuizService(definition, nil, logger)
	questions := questionnaire.Localize(definition, *locale)

	answers := domain.Answers{}
	fmt.Println("===== DermaMatch Quiz =====")
	for _, q := range questions {
		fmt.Printf("\n%s\n", q.Text)
		for i, choice := range q.Choices {
			fmt.Printf("  %d) %s\n", i+1, choice.Text)
		}
		choice, ok := readChoice(reader, len(q.Choices))
		if !ok {
			fmt.Println("  (skipped)")
			continue
		}
		answers[q.Code] = q.Choices[choice-1].ID
	}

	result, err := quizSvc.Classify(answers)
	if err != nil {
		log.Fatalf("classify: %v", err)
	}

	fmt.Printf("\nSkin type: %s\n", result.SkinType)
	if result.TieBreakerUsed {
		fmt.Println("(tie resolved by the tie-breaker question)")
	}
	fmt.Println("Scores:")
	for _, st := range domain.SkinTypeOrder {
		fmt.Printf("  %s: %.1f\n", st, result.Scores[st])
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		printShortlist(ctx, logger, dbURL, result.SkinType)
	}
}

func readChoice(reader *bufio.Reader, max int) (int, bool) {
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > max {
			fmt.Printf("enter a number between 1 and %d, or empty to skip\n", max)
			continue
		}
		return n, true
	}
}

func printShortlist(ctx context.Context, logger *zap.Logger, dbURL string, skinType domain.SkinType) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Printf("db connect: %v", err)
		return
	}
	defer pool.Close()

	catalog := repository.NewPgProductRepository(pool)
	recoSvc := service.NewRecommendationService(catalog, nil, logger)
	results, err := recoSvc.ForSkinType(ctx, skinType)
	if err != nil {
		log.Printf("recommendations: %v", err)
		return
	}
	if len(results) == 0 {
		fmt.Println("\nNo products in the catalog for this skin type yet.")
		return
	}

	fmt.Println("\nRecommended products:")
	for i, sp := range results {
		tags := make([]string, 0, len(sp.Breakdown.MatchedTags))
		for _, tb := range sp.Breakdown.MatchedTags {
			tags = append(tags, tb.Tag)
		}
		sort.Strings(tags)
		fmt.Printf("  %d. %s (%s) score=%.2f tags=%s\n",
			i+1, sp.Product.Name, sp.Product.Category, sp.Score, strings.Join(tags, ","))
	}
}
