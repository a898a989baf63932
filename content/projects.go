package content

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/unknownriver/folio/i18n"
)

// ProjectCard is one entry on the projects page.
type ProjectCard struct {
	Title       string   `validate:"required"`
	Company     string   `validate:"required"`
	Year        string   `validate:"required"`
	Description string   `validate:"required"`
	Skills      []string `validate:"required,min=1,dive,required"`
	Highlights  []string `validate:"required,min=1,dive,required"`
	Type        string   `validate:"required"`
}

var validate = validator.New()

// Projects returns the card catalog for locale. Cards at the same index in
// each locale describe the same project.
func Projects(locale i18n.Locale) []ProjectCard {
	if locale == i18n.Ko {
		return projectsKo
	}
	return projectsEn
}

// CheckCatalogs verifies the per-locale project catalogs have equal length,
// index-aligned company and year, and valid cards.
func CheckCatalogs() error {
	return checkCatalogs(projectsKo, projectsEn)
}

func checkCatalogs(ko, en []ProjectCard) error {
	if len(ko) != len(en) {
		return fmt.Errorf("project catalogs differ in length: ko=%d en=%d", len(ko), len(en))
	}
	var errs []error
	for i := range ko {
		if ko[i].Company != en[i].Company {
			errs = append(errs, fmt.Errorf("project %d: company ko=%q en=%q", i, ko[i].Company, en[i].Company))
		}
		if ko[i].Year != en[i].Year {
			errs = append(errs, fmt.Errorf("project %d: year ko=%q en=%q", i, ko[i].Year, en[i].Year))
		}
		if err := validate.Struct(ko[i]); err != nil {
			errs = append(errs, fmt.Errorf("project %d (ko): %w", i, err))
		}
		if err := validate.Struct(en[i]); err != nil {
			errs = append(errs, fmt.Errorf("project %d (en): %w", i, err))
		}
	}
	return errors.Join(errs...)
}

var projectsKo = []ProjectCard{
	{
		Title:       "LCA/LCCI 플랫폼",
		Company:     "Greenery",
		Year:        "2023 — Present",
		Description: "전과정평가(LCA) 생성·분석·관리 통합 플랫폼. 공정흐름도 에디터, 대용량 데이터 그리드, LCI DB 연동, 결과 시각화 및 리포트 다운로드까지 전 과정 Frontend 설계 및 구현.",
		Skills:      []string{"React", "Redux-Toolkit", "React-Flow", "MUI", "Data Grid Pro", "Storybook"},
		Highlights: []string{
			"Canvas 기반 공정흐름도 에디터 전체 개발",
			"Data Grid Pro 기반 대용량 입력·검증 시스템 구축",
			"Storybook 디자인 시스템 및 FE 환경 초기 세팅",
		},
		Type: "Enterprise Platform",
	},
	{
		Title:       "POPLE Carbon Credit·Marketplace·Registry",
		Company:     "Greenery",
		Year:        "2022 — 2023",
		Description: "탄소 크레딧 발행·거래·레지스트리 통합 플랫폼. 전체 API 전환, 회원가입/결제/크레딧 발행 등 핵심 프로세스 리팩토링, 다국어(i18n) 환경 구축, Admin/Front 전면 개편.",
		Skills:      []string{"React", "Next.js", "Nest.js", "MUI", "Chakra UI", "Google Maps", "i18next"},
		Highlights: []string{
			"Marketplace·Credit·Registry 등 전체 API 전환 FE 전담",
			"크레딧 상세 페이지, Excel Export, PDF Viewer 등 핵심 기능 개발",
			"다국어(i18n) 인프라 전면 구축 및 영문화 처리",
		},
		Type: "Carbon Credit Platform",
	},
	{
		Title:       "Web3 기반 자산 관리 서비스",
		Company:     "Greenery",
		Year:        "2022 — 2023",
		Description: "Metamask 연동 기반 Web3 자산 관리 서비스. 지갑 연결/검증, 폴링 기반 트랜잭션 알림, 자산·거래내역·세금 페이지 및 Admin 기능 개발.",
		Skills:      []string{"React", "Next.js", "Metamask", "Web3.js", "Amplitude"},
		Highlights: []string{
			"Metamask 연결 및 지갑 주소 유효성 검증 로직 구현",
			"내 자산·연결·거래내역·세금 페이지 UI 개발",
			"Amplitude 이벤트 트래킹 및 Event Mapping 설계",
		},
		Type: "Web3 / Blockchain",
	},
	{
		Title:       "STO 거래 플랫폼",
		Company:     "Greenery",
		Year:        "2022",
		Description: "STO(Security Token Offering) 거래 플랫폼 프론트엔드 개발. NextAuth 기반 인증, CRUD API 연동, 반응형 UI 및 인터랙션 이펙트 적용.",
		Skills:      []string{"React", "Next.js", "NextAuth", "Redux-Toolkit", "Chakra UI", "Storybook"},
		Highlights: []string{
			"NextAuth로 일반·기업회원 로그인 구현",
			"Slider, Text Animation 이펙트 적용",
			"반응형 UI 및 CRUD API 연동",
		},
		Type: "Fintech / STO",
	},
	{
		Title:       "공유옥상 투자 플랫폼",
		Company:     "H-Energy",
		Year:        "2020 — 2022",
		Description: "옥상 태양광 발전 공유 투자 플랫폼. 통계 그래프, 지도 기반 위치 표시, 소셜 공유 기능 등 전체 서비스 UI 개발.",
		Skills:      []string{"Vue", "Quasar", "Pug", "Stylus", "Chart.js", "Kakao Map"},
		Highlights: []string{
			"Chart.js로 출자수량, 전력량, 발전량 통계 그래프 개발",
			"Kakao Map API + SVG 그래픽 지도 표시",
			"Pug, Stylus로 전체 서비스 UI 구축",
		},
		Type: "Energy / Investment",
	},
	{
		Title:       "에너지 IoT APP",
		Company:     "Greenery",
		Year:        "2022",
		Description: "에너지 IoT 앱의 가전기기 API 연동 및 EV 앱 연결. React Native + Expo 기반 크로스 플랫폼 모바일 앱 개발.",
		Skills:      []string{"React Native", "Expo", "Redux", "Redux-Saga"},
		Highlights: []string{
			"유저 소유 전자기기 목록 API 연동",
			"ENode 플랫폼 기반 EV APP 연동",
		},
		Type: "IoT / Mobile",
	},
}

var projectsEn = []ProjectCard{
	{
		Title:       "LCA/LCCI Platform",
		Company:     "Greenery",
		Year:        "2023 — Present",
		Description: "Integrated Life Cycle Assessment (LCA) creation, analysis, and management platform. Built process flow diagram editor, high-volume data grids, LCI DB integration, result visualization and report downloads across the full frontend architecture.",
		Skills:      []string{"React", "Redux-Toolkit", "React-Flow", "MUI", "Data Grid Pro", "Storybook"},
		Highlights: []string{
			"Built canvas-based process flow diagram editor from scratch",
			"Developed large-scale input/validation system with Data Grid Pro",
			"Established Storybook design system and FE project infrastructure",
		},
		Type: "Enterprise Platform",
	},
	{
		Title:       "POPLE Carbon Credit·Marketplace·Registry",
		Company:     "Greenery",
		Year:        "2022 — 2023",
		Description: "Integrated carbon credit issuance, trading, and registry platform. Led full API migration, refactored core processes (sign-up, payment, credit issuance), built i18n infrastructure, and rebuilt Admin/Front entirely.",
		Skills:      []string{"React", "Next.js", "Nest.js", "MUI", "Chakra UI", "Google Maps", "i18next"},
		Highlights: []string{
			"Led FE for full API migration across Marketplace, Credit, Registry, User, Payment",
			"Built credit detail page, Excel export, PDF viewer and core features",
			"Established full i18n infrastructure and English localization",
		},
		Type: "Carbon Credit Platform",
	},
	{
		Title:       "Web3 Asset Management Service",
		Company:     "Greenery",
		Year:        "2022 — 2023",
		Description: "Web3 wallet-based asset management service. Built Metamask integration, wallet validation, polling-based transaction notifications, asset/transaction/tax pages and admin features.",
		Skills:      []string{"React", "Next.js", "Metamask", "Web3.js", "Amplitude"},
		Highlights: []string{
			"Implemented Metamask connection and wallet address validation",
			"Developed My Assets, Connection, Transaction History, Tax pages",
			"Applied Amplitude event tracking with custom event mapping",
		},
		Type: "Web3 / Blockchain",
	},
	{
		Title:       "STO Trading Platform",
		Company:     "Greenery",
		Year:        "2022",
		Description: "Security Token Offering (STO) trading platform frontend. Implemented NextAuth-based authentication, CRUD API integration, responsive UI with interaction effects.",
		Skills:      []string{"React", "Next.js", "NextAuth", "Redux-Toolkit", "Chakra UI", "Storybook"},
		Highlights: []string{
			"Implemented general and corporate member login with NextAuth",
			"Applied slider and text animation effects",
			"Built responsive UI with CRUD API integration",
		},
		Type: "Fintech / STO",
	},
	{
		Title:       "Rooftop Investment Platform",
		Company:     "H-Energy",
		Year:        "2020 — 2022",
		Description: "Solar rooftop shared investment platform. Built statistical graphs, map-based location display, social sharing features, and full service UI.",
		Skills:      []string{"Vue", "Quasar", "Pug", "Stylus", "Chart.js", "Kakao Map"},
		Highlights: []string{
			"Created statistical graphs for investments, power output with Chart.js",
			"Integrated Kakao Map API with SVG map visualization",
			"Built entire service UI with Pug and Stylus",
		},
		Type: "Energy / Investment",
	},
	{
		Title:       "Energy IoT App",
		Company:     "Greenery",
		Year:        "2022",
		Description: "Energy IoT app device API integration and EV app connection. Cross-platform mobile development with React Native and Expo.",
		Skills:      []string{"React Native", "Expo", "Redux", "Redux-Saga"},
		Highlights: []string{
			"Integrated APIs for user-owned device listing",
			"Connected EV app with ENode platform",
		},
		Type: "IoT / Mobile",
	},
}
