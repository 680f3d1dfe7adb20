package analysis

import (
	"fmt"
	"time"

	"github.com/Seohyeoksu/lunchlens/internal/allergen"
)

// Prompt templates. Inputs are inserted verbatim: the templates accept
// best-effort prompting, not guaranteed-safe templating, so no escaping or
// truncation happens here.

const imagePromptTemplate = `당신은 학교 급식 영양사이자 알레르기 전문가입니다.
이 이미지를 매우 자세히 분석하여 다음 작업을 수행해주세요:

1. 이미지에 있는 모든 음식/메뉴를 식별하세요
2. 각 음식의 일반적인 재료와 조리법을 고려하세요
3. 숨겨진 알레르기 유발 요소까지 찾아내세요
4. 한국 학교 급식의 특성을 고려하세요

주요 확인 알레르기: %s

다음 JSON 형식으로 매우 상세하게 응답해주세요:
{
    "menu_items": [
        {
            "name": "음식명",
            "ingredients": ["주재료1", "주재료2", "부재료1"],
            "cooking_method": "조리 방법",
            "allergens": [
                {
                    "allergen": "알레르기 유발 물질",
                    "source": "어떤 재료에서 유래",
                    "risk_level": "고도/중등도/경도",
                    "hidden": true,
                    "cross_contamination": false
                }
            ],
            "nutrition_notes": "영양학적 특징"
        }
    ],
    "overall_assessment": {
        "total_allergens": ["전체 알레르기 목록"],
        "high_risk_items": ["고위험 항목들"],
        "hidden_allergens": ["숨겨진 알레르기 유발 요소"],
        "safety_notes": "전반적인 안전 주의사항"
    },
    "recommendations": {
        "substitutions": ["대체 가능한 메뉴"],
        "preparation_tips": ["조리시 주의사항"],
        "serving_guidelines": ["배식시 주의사항"]
    }
}

중요:
- 조미료, 소스, 양념에 숨겨진 알레르기 성분도 찾아주세요
- 교차 오염 가능성도 평가해주세요
- 한국 음식의 특성(고추장, 된장, 새우젓 등)을 고려하세요`

const textPromptTemplate = `당신은 학교 급식 영양사이자 알레르기 전문가입니다.
다음 텍스트(급식 메뉴 또는 식단표)를 분석하여 알레르기 정보를 추출해주세요.

텍스트: %s

주요 확인 알레르기: %s

다음 JSON 형식으로 상세하게 응답해주세요:
{
    "identified_menus": [
        {
            "menu_name": "메뉴명",
            "likely_ingredients": ["추정 재료들"],
            "allergen_analysis": [
                {
                    "allergen": "알레르기 유발 물질",
                    "confidence": "확실함/가능성높음/가능성있음",
                    "source_ingredient": "유래 재료",
                    "risk_level": "고도/중등도/경도",
                    "notes": "추가 설명"
                }
            ]
        }
    ],
    "summary": {
        "total_allergens_found": ["발견된 모든 알레르기"],
        "high_confidence_allergens": ["확실한 알레르기"],
        "possible_allergens": ["가능성 있는 알레르기"],
        "menu_safety_score": "1-10점",
        "special_warnings": ["특별 주의사항"]
    },
    "detailed_recommendations": {
        "for_allergic_students": ["알레르기 학생을 위한 조언"],
        "for_kitchen_staff": ["조리실 직원을 위한 조언"],
        "alternative_options": ["대체 메뉴 제안"]
    }
}

참고사항:
- 한국 음식의 일반적인 재료를 고려하세요
- 숨겨진 알레르기 성분(소스, 양념 등)도 추정하세요
- 조리 과정에서의 교차 오염 가능성도 언급하세요`

const reportPromptTemplate = `당신은 학교 보건교사이자 알레르기 전문가입니다.
다음 분석 결과를 바탕으로 학교 급식 알레르기 종합 보고서를 작성해주세요.

분석 대상: %s
분석 결과: %s

보고서는 다음 형식으로 작성해주세요:

═══════════════════════════════════════════════════════════════════
                    학교 급식 알레르기 종합 분석 보고서
═══════════════════════════════════════════════════════════════════

📅 분석 정보
- 분석일시: %s
- 분석대상: %s

📊 분석 요약
[전체적인 분석 결과 요약 - 3-4줄]

🚨 알레르기 위험도 평가

【고위험 알레르기】
[생명을 위협할 수 있는 알레르기 상세 설명]

【중등도 위험 알레르기】
[주의가 필요한 알레르기 상세 설명]

【경도 위험 알레르기】
[관리 가능한 알레르기 설명]

🔍 상세 분석 결과

[각 메뉴별 상세 분석]

⚠️ 숨겨진 알레르기 유발 요소
[눈에 띄지 않지만 주의해야 할 요소들]

💡 대처 방안

【즉시 시행사항】
1. [구체적인 조치사항]
2. [구체적인 조치사항]

【예방 조치】
- [조리실에서의 예방 조치]
- [배식 시 주의사항]
- [학생 지도 사항]

【응급 대응 프로토콜】
1. 경미한 증상: [대처법]
2. 중등도 증상: [대처법]
3. 심각한 증상: [대처법]

📋 대체 메뉴 제안
[알레르기 학생을 위한 대체 메뉴 제안]

📞 비상 연락망
- 보건실: 내선 [번호]
- 119 구급대: 119
- 학교 인근 병원: [병원명] [전화번호]
- 응급의료정보센터: 1339

✅ 체크리스트
□ 알레르기 학생 명단 확인
□ 대체 급식 준비
□ 조리실 직원 브리핑
□ 담임교사 통보
□ 보건실 의약품 확인

💬 추가 권고사항
[전문가로서의 추가 조언]

═══════════════════════════════════════════════════════════════════

작성 시 주의사항:
1. 의학적으로 정확하면서도 이해하기 쉽게 작성
2. 실제 학교 현장에서 바로 활용 가능한 구체적인 내용
3. 위험도에 따른 우선순위 명확히 구분
4. 한국 학교 급식 환경에 맞는 현실적인 조언`

const medicalPromptTemplate = `당신은 소아 알레르기 전문의입니다.
%s 알레르기에 대해 학교 관계자들이 알아야 할 의학적 정보를 제공해주세요.

다음 JSON 형식으로 응답해주세요:
{
    "medical_name": "의학적 명칭",
    "prevalence": "한국 학생 유병률",
    "mechanism": "알레르기 발생 기전 (쉽게 설명)",
    "symptoms": {
        "immediate": ["즉각적 증상들"],
        "delayed": ["지연성 증상들"],
        "severe": ["심각한 증상들"]
    },
    "onset_time": "증상 발현 시간",
    "cross_reactivity": ["교차 반응 가능 물질들"],
    "diagnosis": "진단 방법",
    "treatment": {
        "emergency": "응급 처치",
        "medication": "사용 가능 약물",
        "long_term": "장기 관리 방법"
    },
    "school_management": {
        "prevention": ["학교에서의 예방 조치"],
        "monitoring": ["관찰 포인트"],
        "documentation": ["필요 서류"]
    },
    "prognosis": "예후 및 성장에 따른 변화"
}`

// ImagePrompt builds the instruction sent alongside an uploaded image.
func ImagePrompt() string {
	return fmt.Sprintf(imagePromptTemplate, allergen.PromptFragment())
}

// TextPrompt builds the instruction for a normalized text payload. The input
// is embedded verbatim.
func TextPrompt(text string) string {
	return fmt.Sprintf(textPromptTemplate, text, allergen.PromptFragment())
}

// ReportPrompt builds the long-form report instruction. resultsJSON is the
// serialized slice of analysis results; sourceLabel names the input source
// ("이미지 파일", "텍스트 입력", ...).
func ReportPrompt(resultsJSON, sourceLabel string, now time.Time) string {
	stamp := fmt.Sprintf("%d년 %02d월 %02d일 %02d시 %02d분",
		now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute())
	return fmt.Sprintf(reportPromptTemplate, sourceLabel, resultsJSON, stamp, sourceLabel)
}

// MedicalPrompt builds the per-allergen medical info instruction.
func MedicalPrompt(allergenName string) string {
	return fmt.Sprintf(medicalPromptTemplate, allergenName)
}
